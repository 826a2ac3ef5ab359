package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/wricardo/go2048/game/engine"
)

// Key binding actions
const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionLeft    = "left"
	ActionRight   = "right"
	ActionQuit    = "quit"
	ActionNewGame = "new_game"
)

// Palette keys that are not tile values
const (
	PaletteEmpty   = "empty"
	PaletteDefault = "default"
)

// GameConfig describes how a game is presented. Board size and the winning
// tile are fixed by the engine and are not configurable.
type GameConfig struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Messages    Messages              `json:"messages"`
	KeyBindings map[string]string     `json:"key_bindings"` // single key -> action
	Palette     map[string]TileColors `json:"palette"`      // tile value, "empty" or "default" -> colours
}

// Messages are the texts shown to the player
type Messages struct {
	Welcome        string `json:"welcome"`
	Victory        string `json:"victory"`
	ContinuePrompt string `json:"continue_prompt"`
	GameOver       string `json:"game_over"`
	Help           string `json:"help"`
	NoChange       string `json:"no_change"`
}

// TileColors holds foreground and background colour names ("#rrggbb" or a
// named colour) for one tile value.
type TileColors struct {
	Foreground string `json:"fg"`
	Background string `json:"bg"`
}

// Action returns the action bound to key, matching letters case-insensitively
func (c *GameConfig) Action(key rune) (string, bool) {
	if c == nil {
		return "", false
	}
	action, ok := c.KeyBindings[strings.ToLower(string(key))]
	return action, ok
}

// Colors returns the palette entry for a tile value. Empty cells use the
// "empty" entry and unlisted values fall back to "default".
func (c *GameConfig) Colors(value int) TileColors {
	if c == nil {
		return TileColors{}
	}
	key := PaletteEmpty
	if value != 0 {
		key = strconv.Itoa(value)
	}
	if colors, ok := c.Palette[key]; ok {
		return colors
	}
	return c.Palette[PaletteDefault]
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
	GameConfig     *GameConfig       `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Changed   bool                `json:"changed"`
	GameState *engine.GameState   `json:"game_state"`
	Outcome   *engine.MoveOutcome `json:"outcome"`
	Message   string              `json:"message"`
	Events    []GameEvent         `json:"events,omitempty"`
}

// Stop reason codes for bulk moves
const (
	StopGameOver         = "game_over"
	StopInvalidDirection = "invalid_direction"
)

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // game_over|invalid_direction
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartScore   int `json:"start_score"`
	EndScore     int `json:"end_score"`
	ScoreDelta   int `json:"score_delta"`
	StartMaxTile int `json:"start_max_tile"`
	EndMaxTile   int `json:"end_max_tile"`

	// Per-move trace (only for this call)
	Outcomes []*engine.MoveOutcome `json:"outcomes,omitempty"`

	// Final status aids
	GameOver      bool     `json:"game_over"`
	Won           bool     `json:"won"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves"`
}

// Event types
const (
	EventMerge    = "merge"
	EventSpawn    = "spawn"
	EventNoChange = "no_change"
	EventVictory  = "victory"
	EventGameOver = "game_over"
	EventReset    = "reset"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
	Value     int              `json:"value,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename,omitempty"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	BuiltIn     bool   `json:"built_in,omitempty"`
}
