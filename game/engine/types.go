package engine

import (
	"fmt"
	"strings"
)

const (
	// Size is the fixed board dimension.
	Size = 4

	// WinningTile is the tile value that wins the game.
	WinningTile = 2048

	// Validation constants
	MinTile      = 2
	MaxBulkMoves = 50
)

// Grid is the 4x4 board. 0 marks an empty cell, any other value is a tile.
type Grid [Size][Size]int

// Position represents row,col coordinates on the grid
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction is the side of the board a move pushes tiles toward
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every valid direction in a stable order.
var Directions = [...]Direction{Up, Down, Left, Right}

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// Valid reports whether d is one of the four defined directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name so JSON output reads "left" rather than 2.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection maps a direction name to a Direction.
// It accepts the full names and the w/a/s/d keys, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q (use up, down, left or right)", ErrInvalidDirection, s)
}

// GameStatus is derived from the grid on demand, never stored.
type GameStatus int

const (
	InProgress GameStatus = iota
	Won
	Lost
)

func (s GameStatus) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status by name
func (s GameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Merge records a tile produced by combining two equal tiles during a move.
// Position is where the merged tile sits after compaction.
type Merge struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
}

// SpawnedTile is a tile placed by the spawner
type SpawnedTile struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
}

// MoveOutcome describes what a single Move did to the board
type MoveOutcome struct {
	Direction Direction    `json:"direction"`
	Gained    int          `json:"gained"`
	Merges    []Merge      `json:"merges,omitempty"`
	Changed   bool         `json:"changed"`
	Spawned   *SpawnedTile `json:"spawned,omitempty"`
	Step      int          `json:"step"`
}

// GameState is a read-only snapshot of an engine
type GameState struct {
	Grid          Grid        `json:"grid"`
	Score         int         `json:"score"`
	Steps         int         `json:"steps"`
	Status        GameStatus  `json:"status"`
	Won           bool        `json:"won"`
	GameOver      bool        `json:"game_over"`
	MaxTile       int         `json:"max_tile"`
	EmptyCells    int         `json:"empty_cells"`
	PossibleMoves []Direction `json:"possible_moves"`
	TotalMoves    int         `json:"total_moves"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Direction   Direction    `json:"direction"`
	ScoreBefore int          `json:"score_before"`
	ScoreAfter  int          `json:"score_after"`
	Gained      int          `json:"gained"`
	Merges      int          `json:"merges"`
	Changed     bool         `json:"changed"`
	Spawned     *SpawnedTile `json:"spawned,omitempty"`
	Timestamp   int64        `json:"timestamp"`
	MoveNumber  int          `json:"move_number"`
}
