package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/go2048/game/engine"
	"github.com/wricardo/go2048/game/service"
)

// CommandKind is what a key press asks the loop to do
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdMove
	CmdQuit
	CmdNewGame
)

// Command is one decoded key press. Direction is set for CmdMove only.
type Command struct {
	Kind      CommandKind
	Direction engine.Direction
}

var arrowKeys = map[tcell.Key]engine.Direction{
	tcell.KeyUp:    engine.Up,
	tcell.KeyDown:  engine.Down,
	tcell.KeyLeft:  engine.Left,
	tcell.KeyRight: engine.Right,
}

// CommandFor translates a key event using the config's key bindings.
// Arrow keys always move; Escape and Ctrl-C always quit.
func CommandFor(ev *tcell.EventKey, config *service.GameConfig) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: CmdQuit}
	case tcell.KeyRune:
		action, ok := config.Action(ev.Rune())
		if !ok {
			return Command{}
		}
		return commandForAction(action)
	}

	if dir, ok := arrowKeys[ev.Key()]; ok {
		return Command{Kind: CmdMove, Direction: dir}
	}
	return Command{}
}

func commandForAction(action string) Command {
	switch action {
	case service.ActionQuit:
		return Command{Kind: CmdQuit}
	case service.ActionNewGame:
		return Command{Kind: CmdNewGame}
	}

	dir, err := engine.ParseDirection(action)
	if err != nil {
		return Command{}
	}
	return Command{Kind: CmdMove, Direction: dir}
}

// Answer is a reply to a yes/no prompt
type Answer int

const (
	AnswerNone Answer = iota
	AnswerYes
	AnswerNo
)

// AnswerFor decodes a key pressed at a yes/no prompt. Quit keys answer no.
func AnswerFor(ev *tcell.EventKey, config *service.GameConfig) Answer {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return AnswerNo
	}
	if ev.Key() != tcell.KeyRune {
		return AnswerNone
	}

	switch unicode.ToLower(ev.Rune()) {
	case 'y':
		return AnswerYes
	case 'n':
		return AnswerNo
	}
	if action, ok := config.Action(ev.Rune()); ok && action == service.ActionQuit {
		return AnswerNo
	}
	return AnswerNone
}
