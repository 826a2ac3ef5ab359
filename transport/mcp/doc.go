// Package mcp exposes 2048 game sessions as Model Context Protocol tools.
//
// The server runs in-process on top of a service.GameService and talks to
// the client over stdin/stdout, so an agent can create sessions and play
// them move by move.
//
// MCP Tools:
//   - create_session, get_session, list_sessions, delete_session
//   - game_state: board, score, steps and possible moves
//   - move: single move, with an optional reset
//   - bulk_move: up to 50 moves, stopping early on game over
//   - reset_game: start a new game in a session
//   - move_history: paginated history, newest first by default
//   - list_configs: available presentation configs
//   - game_instructions: the rules
//
// Tool results are plain text. Numbers are digit-grouped and the board is
// drawn as a boxed 4x4 grid with "." for empty cells.
//
// Usage:
//
//	server := mcp.NewServer(gameService, version)
//	if err := server.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
