package engine

import (
	"fmt"
	"slices"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	Initialize()
	Reset() *GameState
	GetState() *GameState
	SetGrid(grid Grid, score, steps int) error
	GetGrid() Grid
	GetScore() int
	GetSteps() int

	// Status
	HasWon() bool
	IsGameOver() bool
	Status() GameStatus

	// Movement operations
	Move(dir Direction) (*MoveOutcome, error)
	SpawnTile() (*SpawnedTile, error)
	CanMove(dir Direction) bool
	PossibleMoves() []Direction

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface.
// It is not safe for concurrent use; callers serialise access.
type GameEngine struct {
	grid    Grid
	score   int
	steps   int
	spawner *Spawner
	history []MoveHistoryEntry
	now     func() time.Time
}

// NewEngine creates an engine drawing tiles from src and starts a game
func NewEngine(src RandSource) *GameEngine {
	e := &GameEngine{
		spawner: NewSpawner(src),
		now:     time.Now,
	}
	e.Initialize()
	return e
}

// NewEngineWithDefaults creates an engine with its own crypto-seeded source
func NewEngineWithDefaults() *GameEngine {
	return NewEngine(NewRandomSource())
}

// Initialize clears the board, score and step counter and spawns two tiles
func (e *GameEngine) Initialize() {
	e.grid = Grid{}
	e.score = 0
	e.steps = 0
	e.history = []MoveHistoryEntry{}

	// cannot fail: the grid was just cleared
	_, _ = e.SpawnTile()
	_, _ = e.SpawnTile()
}

// Reset starts a new game and returns its state
func (e *GameEngine) Reset() *GameState {
	e.Initialize()
	return e.GetState()
}

// GetState returns a snapshot of the current game
func (e *GameEngine) GetState() *GameState {
	return &GameState{
		Grid:          e.grid,
		Score:         e.score,
		Steps:         e.steps,
		Status:        e.Status(),
		Won:           e.HasWon(),
		GameOver:      e.IsGameOver(),
		MaxTile:       e.grid.MaxTile(),
		EmptyCells:    len(e.grid.EmptyCells()),
		PossibleMoves: e.PossibleMoves(),
		TotalMoves:    len(e.history),
	}
}

// SetGrid replaces the board, score and step counter (used for scenario setup)
func (e *GameEngine) SetGrid(grid Grid, score, steps int) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	if score < 0 || steps < 0 {
		return fmt.Errorf("%w: score and steps must be non-negative", ErrInvariantViolation)
	}
	e.grid = grid
	e.score = score
	e.steps = steps
	return nil
}

// GetGrid returns a copy of the board
func (e *GameEngine) GetGrid() Grid {
	return e.grid
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.score
}

// GetSteps returns the number of accepted moves
func (e *GameEngine) GetSteps() int {
	return e.steps
}

// HasWon reports whether a 2048 tile is on the board
func (e *GameEngine) HasWon() bool {
	return e.grid.Contains(WinningTile)
}

// IsGameOver reports whether no move in any direction can change the board
func (e *GameEngine) IsGameOver() bool {
	return !e.grid.HasEmptyCell() && !e.grid.HasEqualNeighbours()
}

// Status derives the game status; a won board reports Won even if it is also stuck
func (e *GameEngine) Status() GameStatus {
	switch {
	case e.HasWon():
		return Won
	case e.IsGameOver():
		return Lost
	}
	return InProgress
}

// SpawnTile places a 2 or 4 on a uniformly chosen empty cell
func (e *GameEngine) SpawnTile() (*SpawnedTile, error) {
	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		return nil, fmt.Errorf("%w: cannot spawn a tile on a full grid", ErrInvariantViolation)
	}

	pos, value := e.spawner.Pick(empty)
	e.grid[pos.Row][pos.Col] = value
	return &SpawnedTile{Position: pos, Value: value}, nil
}

// Move slides and merges every line toward dir, counts the step and spawns a tile.
// The step counts and a tile spawns even when nothing moved; the spawn is
// skipped only when the board has no empty cell.
func (e *GameEngine) Move(dir Direction) (*MoveOutcome, error) {
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	before := e.grid
	scoreBefore := e.score

	gained, merges := e.grid.slide(dir)
	e.score += gained
	e.steps++

	outcome := &MoveOutcome{
		Direction: dir,
		Gained:    gained,
		Merges:    merges,
		Changed:   e.grid != before,
		Step:      e.steps,
	}

	if e.grid.HasEmptyCell() {
		spawned, err := e.SpawnTile()
		if err != nil {
			return nil, err
		}
		outcome.Spawned = spawned
	}

	e.addMoveToHistory(outcome, scoreBefore)
	return outcome, nil
}

// CanMove reports whether moving toward dir would change the board
func (e *GameEngine) CanMove(dir Direction) bool {
	return e.grid.CanSlide(dir)
}

// PossibleMoves returns all directions that would change the board
func (e *GameEngine) PossibleMoves() []Direction {
	possible := []Direction{}
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetMoveHistory returns a copy of the moves of the current game
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return slices.Clone(e.history)
}

// GetLastMove returns a copy of the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// BulkMove executes moves in sequence until the game is lost.
// It stops at the first invalid direction and returns its error.
func (e *GameEngine) BulkMove(moves []Direction) ([]*MoveOutcome, error) {
	outcomes := make([]*MoveOutcome, 0, len(moves))

	for _, dir := range moves {
		if e.IsGameOver() {
			break
		}

		outcome, err := e.Move(dir)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func (e *GameEngine) addMoveToHistory(outcome *MoveOutcome, scoreBefore int) {
	e.history = append(e.history, MoveHistoryEntry{
		Direction:   outcome.Direction,
		ScoreBefore: scoreBefore,
		ScoreAfter:  e.score,
		Gained:      outcome.Gained,
		Merges:      len(outcome.Merges),
		Changed:     outcome.Changed,
		Spawned:     outcome.Spawned,
		Timestamp:   e.now().Unix(),
		MoveNumber:  e.steps,
	})
}
