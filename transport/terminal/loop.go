package terminal

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/go2048/game/engine"
	"github.com/wricardo/go2048/game/service"
)

// Loop plays one session on a terminal screen: draw, check for a win or a
// loss, read a key, apply it.
type Loop struct {
	games    service.GameService
	screen   tcell.Screen
	renderer *Renderer

	sessionID string
	config    *service.GameConfig
	status    string

	// set once the player chose to keep playing after reaching 2048
	continued bool
}

// NewLoop creates a loop drawing on screen, which must already be initialised
func NewLoop(games service.GameService, screen tcell.Screen) *Loop {
	return &Loop{
		games:    games,
		screen:   screen,
		renderer: NewRenderer(screen),
	}
}

// Run plays sessionID until the player quits, declines to continue after a
// win, or leaves the game-over screen. It returns ctx.Err() when ctx is
// cancelled first.
func (l *Loop) Run(ctx context.Context, sessionID string) error {
	info, err := l.games.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	l.sessionID = info.ID
	l.config = info.GameConfig
	l.status = ""
	l.continued = info.GameState.Won

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			l.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		state, err := l.games.GetGameState(ctx, l.sessionID)
		if err != nil {
			return err
		}

		switch {
		case state.Won && !l.continued:
			keepPlaying, err := l.askToContinue(ctx, state)
			if err != nil || !keepPlaying {
				return err
			}
			l.continued = true
			continue

		case state.GameOver:
			again, err := l.gameOver(ctx, state)
			if err != nil || !again {
				return err
			}
			continue
		}

		l.draw(state, "")
		ev, err := l.nextKey(ctx, state, "")
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}

		cmd := CommandFor(ev, l.config)
		switch cmd.Kind {
		case CmdQuit:
			return nil
		case CmdNewGame:
			if err := l.newGame(ctx); err != nil {
				return err
			}
		case CmdMove:
			l.move(ctx, cmd.Direction)
		}
	}
}

func (l *Loop) move(ctx context.Context, dir engine.Direction) {
	result, err := l.games.Move(ctx, l.sessionID, dir.String(), false)
	if err != nil {
		log.Printf("Move %s failed: %v", dir, err)
		l.status = err.Error()
		return
	}
	l.status = result.Message
}

func (l *Loop) newGame(ctx context.Context) error {
	if _, err := l.games.Reset(ctx, l.sessionID); err != nil {
		return err
	}
	l.continued = false
	l.status = "New game"
	return nil
}

// askToContinue shows the victory prompt and waits for y or n
func (l *Loop) askToContinue(ctx context.Context, state *engine.GameState) (bool, error) {
	msgs := l.messages()
	prompt := fmt.Sprintf("%s %s ", msgs.Victory, msgs.ContinuePrompt)

	for {
		l.draw(state, prompt)
		ev, err := l.nextKey(ctx, state, prompt)
		if err != nil || ev == nil {
			return false, err
		}
		switch AnswerFor(ev, l.config) {
		case AnswerYes:
			l.status = ""
			return true, nil
		case AnswerNo:
			return false, nil
		}
	}
}

// gameOver shows the final board and waits for a key. The new-game key
// starts over, anything else leaves.
func (l *Loop) gameOver(ctx context.Context, state *engine.GameState) (bool, error) {
	prompt := l.messages().GameOver + " Press any key to exit"
	if key, ok := l.newGameKey(); ok {
		prompt = fmt.Sprintf("%s Press %s for a new game or any other key to exit", l.messages().GameOver, key)
	}

	l.draw(state, prompt)
	ev, err := l.nextKey(ctx, state, prompt)
	if err != nil || ev == nil {
		return false, err
	}
	if CommandFor(ev, l.config).Kind != CmdNewGame {
		return false, nil
	}
	if err := l.newGame(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Loop) draw(state *engine.GameState, prompt string) {
	l.renderer.Draw(View{
		State:  state,
		Config: l.config,
		Status: l.status,
		Prompt: prompt,
	})
}

// nextKey blocks until a key is pressed. Resizes redraw the current frame.
// A nil event means the screen was finalised.
func (l *Loop) nextKey(ctx context.Context, state *engine.GameState, prompt string) (*tcell.EventKey, error) {
	for {
		switch ev := l.screen.PollEvent().(type) {
		case nil:
			return nil, nil
		case *tcell.EventKey:
			return ev, nil
		case *tcell.EventResize:
			l.screen.Sync()
			l.draw(state, prompt)
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
}

func (l *Loop) messages() service.Messages {
	msgs := service.Messages{
		Victory:        "YOU WIN!",
		ContinuePrompt: "Continue playing? (y/n)",
		GameOver:       "GAME OVER!",
	}
	if l.config == nil {
		return msgs
	}
	if m := l.config.Messages.Victory; m != "" {
		msgs.Victory = m
	}
	if m := l.config.Messages.ContinuePrompt; m != "" {
		msgs.ContinuePrompt = m
	}
	if m := l.config.Messages.GameOver; m != "" {
		msgs.GameOver = m
	}
	return msgs
}

// newGameKey returns the key bound to a new game, upper-cased for display
func (l *Loop) newGameKey() (string, bool) {
	if l.config == nil {
		return "", false
	}
	for key, action := range l.config.KeyBindings {
		if action == service.ActionNewGame {
			return strings.ToUpper(key), true
		}
	}
	return "", false
}
