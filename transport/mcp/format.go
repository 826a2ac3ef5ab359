package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/go2048/game/engine"
	"github.com/wricardo/go2048/game/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const cellWidth = 6

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatSessionList(sessions []*service.SessionInfo) string {
	if len(sessions) == 0 {
		return "No active sessions"
	}

	p := newPrinter()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Active sessions (%d):\n", len(sessions)))
	for _, s := range sessions {
		score, steps, status := 0, 0, engine.InProgress
		if s.GameState != nil {
			score, steps, status = s.GameState.Score, s.GameState.Steps, s.GameState.Status
		}
		b.WriteString(p.Sprintf("- %s [%s] score=%d steps=%d status=%s last=%s\n",
			s.ID, s.ConfigName, score, steps, status,
			s.LastAccessedAt.Format("15:04:05")))
	}
	return b.String()
}

// formatGrid draws the board inside a box, one row of cells per line
func formatGrid(grid engine.Grid) string {
	var b strings.Builder
	border := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", engine.Size) + "\n"

	b.WriteString(border)
	for _, row := range grid {
		b.WriteString("|")
		for _, v := range row {
			if v == 0 {
				b.WriteString(strings.Repeat(" ", cellWidth-1) + ".|")
				continue
			}
			b.WriteString(fmt.Sprintf("%*d|", cellWidth, v))
		}
		b.WriteString("\n")
		b.WriteString(border)
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	p := newPrinter()
	var b strings.Builder

	b.WriteString(p.Sprintf("Score: %d | Steps: %d | Max tile: %d | Status: %s\n\n",
		state.Score, state.Steps, state.MaxTile, state.Status))
	b.WriteString(formatGrid(state.Grid))
	b.WriteString(fmt.Sprintf("\nEmpty cells: %d\n", state.EmptyCells))

	if len(state.PossibleMoves) > 0 {
		names := make([]string, len(state.PossibleMoves))
		for i, d := range state.PossibleMoves {
			names[i] = d.String()
		}
		b.WriteString(fmt.Sprintf("Possible moves: %s\n", strings.Join(names, ", ")))
	} else {
		b.WriteString("Possible moves: none\n")
	}

	if state.Won {
		b.WriteString("\nYOU WIN! A 2048 tile is on the board. You can keep playing.\n")
	}
	if state.GameOver {
		b.WriteString("\nGAME OVER! No moves left. Use reset_game to play again.\n")
	}

	return b.String()
}

func formatEvents(b *strings.Builder, events []service.GameEvent) {
	if len(events) == 0 {
		return
	}
	b.WriteString("Events:\n")
	for _, event := range events {
		b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
	}
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder

	if result.Changed {
		b.WriteString("✓ " + result.Message + "\n")
	} else {
		b.WriteString("✗ " + result.Message + "\n")
	}

	if o := result.Outcome; o != nil {
		spawn := "none"
		if o.Spawned != nil {
			spawn = fmt.Sprintf("%d at (%d,%d)", o.Spawned.Value, o.Spawned.Position.Row, o.Spawned.Position.Col)
		}
		b.WriteString(fmt.Sprintf("Step %d: %s merges=%d gained=%d spawned=%s\n",
			o.Step, o.Direction, len(o.Merges), o.Gained, spawn))
	}

	formatEvents(&b, result.Events)
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	p := newPrinter()
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Session: %s\n", sessionID))
	b.WriteString(fmt.Sprintf("Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the first %d moves\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason))
	}
	b.WriteString(p.Sprintf("Score: %d -> %d (+%d) | Max tile: %d -> %d\n",
		result.StartScore, result.EndScore, result.ScoreDelta,
		result.StartMaxTile, result.EndMaxTile))

	if len(result.Outcomes) > 0 {
		b.WriteString("\nSteps:\n")
		for i, o := range result.Outcomes {
			mark := "✓"
			if !o.Changed {
				mark = "✗"
			}
			b.WriteString(fmt.Sprintf("%d. %s +%d %s\n", i+1, o.Direction, o.Gained, mark))
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("\n")
		formatEvents(&b, result.Events)
	}

	if result.Message != "" {
		b.WriteString("\n" + result.Message + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	if history.TotalMoves == 0 {
		return "No moves yet"
	}

	p := newPrinter()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Move history (page %d of %d, %d moves total):\n",
		history.Page, history.TotalPages, history.TotalMoves))

	for _, entry := range history.Moves {
		line := p.Sprintf("%d. %s score %d -> %d (+%d) merges=%d",
			entry.MoveNumber, entry.Direction, entry.ScoreBefore, entry.ScoreAfter, entry.Gained, entry.Merges)
		if !entry.Changed {
			line += " (no change)"
		}
		b.WriteString(line + "\n")
	}

	if history.HasPrevious || history.HasNext {
		var nav []string
		if history.HasPrevious {
			nav = append(nav, fmt.Sprintf("previous: page %d", history.Page-1))
		}
		if history.HasNext {
			nav = append(nav, fmt.Sprintf("next: page %d", history.Page+1))
		}
		b.WriteString(strings.Join(nav, " | ") + "\n")
	}
	return b.String()
}

func formatConfigs(configs []*service.ConfigInfo) string {
	if len(configs) == 0 {
		return "No configurations available"
	}

	var b strings.Builder
	b.WriteString("Available configurations:\n")
	for _, c := range configs {
		source := c.Filename
		if c.BuiltIn {
			source = "built-in"
		}
		b.WriteString(fmt.Sprintf("- %s: %s (%s)", c.ConfigID, c.Name, source))
		if c.Description != "" {
			b.WriteString(" - " + c.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
