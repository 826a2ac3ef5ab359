// Package engine provides the board transformation logic for 2048.
//
// The engine package implements the game mechanics including:
//   - A fixed 4x4 grid of power-of-two tiles
//   - Directional moves as a merge pass followed by a compaction pass
//   - Tile spawning from an injectable random source
//   - Win and game-over detection
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Grid is the board itself, GameState a
// read-only snapshot, and Spawner the tile placement policy.
//
// Usage:
//
//	gameEngine := engine.NewEngine(engine.NewSeededSource(42))
//
//	outcome, err := gameEngine.Move(engine.Left)
//	if err != nil {
//		log.Fatal(err)
//	}
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Every move pushes all tiles toward one edge. Equal tiles that meet merge
// into one tile of double value and the merged value is added to the score.
// A tile produced by a merge does not merge again in the same move, so a row
// of four 2s moved left becomes 4,4 and not 8. After each move a 2 (90%) or
// a 4 (10%) appears on a random empty cell. A 2048 tile wins; a full board
// with no equal neighbours loses. The engine reports status but never stops
// accepting moves; that decision belongs to the caller.
package engine
