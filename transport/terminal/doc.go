// Package terminal is the full-screen tcell front end for 2048.
//
// A Loop drives one session through a service.GameService. Each turn it
// draws the board, stops to ask whether to keep playing the first time a
// 2048 tile appears, shows the game-over screen when no move is left, and
// otherwise reads one key and applies it.
//
// Keys come from the session's config bindings (W/A/S/D, Q and R in the
// classic config). Arrow keys always move; Escape and Ctrl-C always quit.
//
// Usage:
//
//	screen, err := tcell.NewScreen()
//	if err != nil {
//		return err
//	}
//	if err := screen.Init(); err != nil {
//		return err
//	}
//	defer screen.Fini()
//
//	err = terminal.NewLoop(games, screen).Run(ctx, sessionID)
package terminal
