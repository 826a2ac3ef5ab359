package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wricardo/go2048/game/engine"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *GameConfig
	configID := configName
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return nil, s.configNotFoundError(configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.getConfigID(config)
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.ConfigID = configID

	log.Printf("Created session %s (config %s)", sess.ID, configID)
	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// UpdateLastAccessed writes the session, so readers need the write lock
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	log.Printf("Deleted session %s", sessionID)
	return nil
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	wonBefore := sess.Engine.HasWon()
	outcome, err := sess.Engine.Move(dir)
	if err != nil {
		return nil, fmt.Errorf("move %s failed: %w", dir, err)
	}

	state := sess.Engine.GetState()
	moveEvents := outcomeEvents(sess.Config, outcome, wonBefore, state)
	events = append(events, moveEvents...)

	return &MoveResult{
		Changed:   outcome.Changed,
		GameState: state,
		Outcome:   outcome,
		Message:   moveMessage(outcome, moveEvents),
		Events:    events,
	}, nil
}

// BulkMove executes multiple moves in sequence. It stops when the game is
// lost or at the first unknown direction.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	start := sess.Engine.GetState()
	result.StartScore = start.Score
	result.StartMaxTile = start.MaxTile

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game over"
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: %v", i+1, err)
			result.StopReasonCode = StopInvalidDirection
			result.StoppedOnMove = i + 1
			break
		}

		wonBefore := sess.Engine.HasWon()
		outcome, err := sess.Engine.Move(dir)
		if err != nil {
			return nil, fmt.Errorf("move %d (%s) failed: %w", i+1, dir, err)
		}

		result.MovesExecuted++
		result.Outcomes = append(result.Outcomes, outcome)
		result.Events = append(result.Events, outcomeEvents(sess.Config, outcome, wonBefore, sess.Engine.GetState())...)
	}

	end := sess.Engine.GetState()
	result.GameState = end
	result.EndScore = end.Score
	result.EndMaxTile = end.MaxTile
	result.ScoreDelta = end.Score - result.StartScore
	result.GameOver = end.GameOver
	result.Won = end.Won
	result.PossibleMoves = directionNames(end.PossibleMoves)
	result.Message = bulkMessage(sess.Config, result)

	return result, nil
}

// Reset starts a new game in the session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Reset(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	moves := []engine.MoveHistoryEntry{}
	if opts.Page <= totalPages {
		start := (opts.Page - 1) * opts.Limit
		end := min(start+opts.Limit, total)
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// getConfigID returns the config_id for a config, used for consistent responses
func (s *gameServiceImpl) getConfigID(config *GameConfig) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil && config != nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == config.Name {
				return cfg.ConfigID
			}
		}
	}
	return "default"
}

func (s *gameServiceImpl) configNotFoundError(configName string) error {
	availableConfigs, err := s.configs.ListConfigs()
	if err != nil || len(availableConfigs) == 0 {
		return fmt.Errorf("config '%s': %w", configName, ErrConfigNotFound)
	}
	ids := make([]string, 0, len(availableConfigs))
	for _, cfg := range availableConfigs {
		ids = append(ids, cfg.ConfigID)
	}
	return fmt.Errorf("config '%s': %w. Available configs: %v", configName, ErrConfigNotFound, ids)
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Started a new game",
		Timestamp: time.Now(),
	}
}

// outcomeEvents turns a move outcome into events. Victory is reported only on
// the move that first produced the winning tile.
func outcomeEvents(config *GameConfig, outcome *engine.MoveOutcome, wonBefore bool, state *engine.GameState) []GameEvent {
	now := time.Now()
	events := []GameEvent{}

	if !outcome.Changed {
		events = append(events, GameEvent{
			Type:      EventNoChange,
			Message:   messageOr(messagesOf(config).NoChange, fmt.Sprintf("Nothing moved %s", outcome.Direction)),
			Timestamp: now,
		})
	}

	for _, m := range outcome.Merges {
		pos := m.Position
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("Merged %d at (%d,%d)", m.Value, pos.Row, pos.Col),
			Timestamp: now,
			Position:  &pos,
			Value:     m.Value,
		})
	}

	if outcome.Spawned != nil {
		pos := outcome.Spawned.Position
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("Spawned %d at (%d,%d)", outcome.Spawned.Value, pos.Row, pos.Col),
			Timestamp: now,
			Position:  &pos,
			Value:     outcome.Spawned.Value,
		})
	}

	if state.Won && !wonBefore {
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   messageOr(messagesOf(config).Victory, fmt.Sprintf("Reached %d!", engine.WinningTile)),
			Timestamp: now,
			Value:     engine.WinningTile,
		})
	}

	if state.GameOver {
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   messageOr(messagesOf(config).GameOver, "Game over: no moves left"),
			Timestamp: now,
		})
	}

	return events
}

// moveMessage picks the most significant event message for a single move
func moveMessage(outcome *engine.MoveOutcome, events []GameEvent) string {
	for _, kind := range []string{EventGameOver, EventVictory, EventNoChange} {
		for _, ev := range events {
			if ev.Type == kind {
				return ev.Message
			}
		}
	}
	if outcome.Gained > 0 {
		return fmt.Sprintf("Moved %s, +%d points", outcome.Direction, outcome.Gained)
	}
	return fmt.Sprintf("Moved %s", outcome.Direction)
}

func bulkMessage(config *GameConfig, result *BulkMoveResult) string {
	switch {
	case result.StopReasonCode == StopInvalidDirection:
		return result.StoppedReason
	case result.GameOver:
		return messageOr(messagesOf(config).GameOver, "Game over: no moves left")
	}
	return fmt.Sprintf("Executed %d of %d moves, +%d points", result.MovesExecuted, result.RequestedMoves, result.ScoreDelta)
}

func messagesOf(config *GameConfig) Messages {
	if config == nil {
		return Messages{}
	}
	return config.Messages
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func directionNames(dirs []engine.Direction) []string {
	names := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		names = append(names, dir.String())
	}
	return names
}
