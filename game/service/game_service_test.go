package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/go2048/game/engine"
	"github.com/wricardo/go2048/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *service.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	session := &service.Session{
		ID:             id,
		Engine:         engine.NewEngine(engine.NewSeededSource(uint64(len(m.sessions) + 1))),
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *service.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*service.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := &service.GameConfig{
		Name:        "test",
		Description: "Test configuration",
		Messages: service.Messages{
			Welcome:  "Welcome to test!",
			Victory:  "You made 2048!",
			GameOver: "No moves left!",
			NoChange: "Nothing moved",
		},
		KeyBindings: map[string]string{"w": service.ActionUp},
	}

	return &MockConfigManager{
		configs: map[string]*service.GameConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*service.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, service.ErrConfigNotFound
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *service.GameConfig {
	return m.configs["default"]
}

var lostGrid = engine.Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, string) {
	t.Helper()
	sessions := NewMockSessionManager()
	svc := service.NewGameService(sessions, NewMockConfigManager())

	info, err := svc.CreateSession(context.Background(), "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, sessions, info.ID
}

func setGrid(t *testing.T, sessions *MockSessionManager, id string, grid engine.Grid) {
	t.Helper()
	if err := sessions.sessions[id].Engine.SetGrid(grid, 0, 0); err != nil {
		t.Fatalf("SetGrid failed: %v", err)
	}
}

func hasEvent(events []service.GameEvent, kind string) bool {
	for _, ev := range events {
		if ev.Type == kind {
			return true
		}
	}
	return false
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantErr:    false,
		},
		{
			name:       "create with specific config",
			configName: "test",
			wantErr:    false,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, service.ErrConfigNotFound) {
					t.Errorf("Expected ErrConfigNotFound, got %v", err)
				}
				return
			}
			if session == nil {
				t.Fatal("CreateSession() returned nil session")
			}
			if session.ConfigName == "" {
				t.Error("Expected a config name on the session")
			}
			if session.GameState.Grid.TileCount() != 2 {
				t.Errorf("Expected 2 starting tiles, got %d", session.GameState.Grid.TileCount())
			}
		})
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)

	t.Run("merge produces events and score", func(t *testing.T) {
		setGrid(t, sessions, id, engine.Grid{{2, 2, 0, 0}})

		result, err := svc.Move(ctx, id, "left", false)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if !result.Changed {
			t.Error("Expected the move to change the board")
		}
		if result.GameState.Score != 4 {
			t.Errorf("Expected score 4, got %d", result.GameState.Score)
		}
		if !hasEvent(result.Events, service.EventMerge) || !hasEvent(result.Events, service.EventSpawn) {
			t.Errorf("Expected merge and spawn events, got %+v", result.Events)
		}
		if result.Message == "" {
			t.Error("Expected a message")
		}
	})

	t.Run("no-op move reports no_change", func(t *testing.T) {
		setGrid(t, sessions, id, engine.Grid{{2, 0, 0, 0}})

		result, err := svc.Move(ctx, id, "left", false)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Changed {
			t.Error("Expected no change")
		}
		if result.Message != "Nothing moved" {
			t.Errorf("Expected config no-change message, got %q", result.Message)
		}
		if result.GameState.Steps != 1 {
			t.Errorf("Expected the no-op move to count a step, got %d", result.GameState.Steps)
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		_, err := svc.Move(ctx, id, "diagonal", false)
		if !errors.Is(err, engine.ErrInvalidDirection) {
			t.Errorf("Expected ErrInvalidDirection, got %v", err)
		}
	})

	t.Run("invalid session", func(t *testing.T) {
		if _, err := svc.Move(ctx, "nonexistent", "up", false); err == nil {
			t.Error("Expected error for unknown session")
		}
	})

	t.Run("reset before move", func(t *testing.T) {
		result, err := svc.Move(ctx, id, "right", true)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Events[0].Type != service.EventReset {
			t.Errorf("Expected reset event first, got %s", result.Events[0].Type)
		}
		if result.GameState.Steps != 1 {
			t.Errorf("Expected 1 step after reset and move, got %d", result.GameState.Steps)
		}
	})
}

func TestGameService_VictoryReportedOnce(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)
	setGrid(t, sessions, id, engine.Grid{{1024, 1024, 0, 0}})

	first, err := svc.Move(ctx, id, "left", false)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !hasEvent(first.Events, service.EventVictory) {
		t.Fatalf("Expected victory event, got %+v", first.Events)
	}
	if first.Message != "You made 2048!" {
		t.Errorf("Expected victory message, got %q", first.Message)
	}
	if first.GameState.Status != engine.Won {
		t.Errorf("Expected status won, got %s", first.GameState.Status)
	}

	second, err := svc.Move(ctx, id, "right", false)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if hasEvent(second.Events, service.EventVictory) {
		t.Error("Expected victory to be reported only once")
	}
}

func TestGameService_GameOver(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)
	setGrid(t, sessions, id, lostGrid)

	result, err := svc.Move(ctx, id, "up", false)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !hasEvent(result.Events, service.EventGameOver) {
		t.Errorf("Expected game_over event, got %+v", result.Events)
	}
	if result.Outcome.Spawned != nil {
		t.Error("Expected no spawn on a full board")
	}
	if result.Message != "No moves left!" {
		t.Errorf("Expected game over message, got %q", result.Message)
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()

	t.Run("executes all moves", func(t *testing.T) {
		svc, _, id := newTestService(t)
		result, err := svc.BulkMove(ctx, id, []string{"up", "right", "down", "left"}, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if result.MovesExecuted != 4 || !result.Success {
			t.Errorf("Expected 4 successful moves, got %d (success=%v)", result.MovesExecuted, result.Success)
		}
		if len(result.Outcomes) != 4 {
			t.Errorf("Expected 4 outcomes, got %d", len(result.Outcomes))
		}
		if result.GameState.Steps != 4 {
			t.Errorf("Expected 4 steps, got %d", result.GameState.Steps)
		}
		if result.ScoreDelta != result.EndScore-result.StartScore {
			t.Errorf("Inconsistent score delta %d", result.ScoreDelta)
		}
	})

	t.Run("stops at invalid direction", func(t *testing.T) {
		svc, _, id := newTestService(t)
		result, err := svc.BulkMove(ctx, id, []string{"left", "bogus", "right"}, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if result.Success {
			t.Error("Expected bulk move to report failure")
		}
		if result.MovesExecuted != 1 || result.StoppedOnMove != 2 {
			t.Errorf("Expected stop on move 2 after 1 move, got executed=%d stopped=%d", result.MovesExecuted, result.StoppedOnMove)
		}
		if result.StopReasonCode != service.StopInvalidDirection {
			t.Errorf("Expected invalid_direction, got %q", result.StopReasonCode)
		}
	})

	t.Run("stops when game is over", func(t *testing.T) {
		svc, sessions, id := newTestService(t)
		setGrid(t, sessions, id, lostGrid)

		result, err := svc.BulkMove(ctx, id, []string{"left", "right"}, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if result.MovesExecuted != 0 || result.StopReasonCode != service.StopGameOver {
			t.Errorf("Expected immediate game_over stop, got executed=%d code=%q", result.MovesExecuted, result.StopReasonCode)
		}
		if !result.GameOver {
			t.Error("Expected GameOver flag")
		}
		if len(result.PossibleMoves) != 0 {
			t.Errorf("Expected no possible moves, got %v", result.PossibleMoves)
		}
	})

	t.Run("truncates long batches", func(t *testing.T) {
		svc, _, id := newTestService(t)
		moves := make([]string, 60)
		for i := range moves {
			moves[i] = engine.Directions[i%len(engine.Directions)].String()
		}

		result, err := svc.BulkMove(ctx, id, moves, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if !result.Truncated || result.Limit != engine.MaxBulkMoves {
			t.Errorf("Expected truncation at %d, got truncated=%v limit=%d", engine.MaxBulkMoves, result.Truncated, result.Limit)
		}
		if result.RequestedMoves != 60 {
			t.Errorf("Expected 60 requested moves, got %d", result.RequestedMoves)
		}
		if result.MovesExecuted > engine.MaxBulkMoves {
			t.Errorf("Executed %d moves, more than the limit", result.MovesExecuted)
		}
		if result.StopReasonCode == "" && result.MovesExecuted != engine.MaxBulkMoves {
			t.Errorf("Expected %d moves without a stop reason, got %d", engine.MaxBulkMoves, result.MovesExecuted)
		}
	})

	t.Run("invalid session", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		if _, err := svc.BulkMove(ctx, "nonexistent", []string{"up"}, false); err == nil {
			t.Error("Expected error for unknown session")
		}
	})
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	if _, err := svc.BulkMove(ctx, id, []string{"up", "left", "down"}, false); err != nil {
		t.Fatalf("BulkMove failed: %v", err)
	}

	state, err := svc.Reset(ctx, id)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.Score != 0 || state.Steps != 0 || state.TotalMoves != 0 {
		t.Errorf("Expected fresh game, got score=%d steps=%d moves=%d", state.Score, state.Steps, state.TotalMoves)
	}
	if state.Grid.TileCount() != 2 {
		t.Errorf("Expected 2 tiles after reset, got %d", state.Grid.TileCount())
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	if _, err := svc.BulkMove(ctx, id, []string{"up", "left", "down", "right", "up"}, false); err != nil {
		t.Fatalf("BulkMove failed: %v", err)
	}

	tests := []struct {
		name        string
		opts        service.HistoryOptions
		wantNumbers []int
		wantNext    bool
	}{
		{"default order is newest first", service.HistoryOptions{Limit: 2}, []int{5, 4}, true},
		{"ascending second page", service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"}, []int{3, 4}, true},
		{"descending last page", service.HistoryOptions{Page: 3, Limit: 2}, []int{1}, false},
		{"page past the end", service.HistoryOptions{Page: 9, Limit: 2, Order: "asc"}, []int{}, false},
		{"huge page ascending", service.HistoryOptions{Page: 1 << 62, Limit: 20, Order: "asc"}, []int{}, false},
		{"huge page descending", service.HistoryOptions{Page: 1 << 62, Limit: 2}, []int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := svc.GetMoveHistory(ctx, id, tt.opts)
			if err != nil {
				t.Fatalf("GetMoveHistory failed: %v", err)
			}
			wantPages := (5 + history.PageSize - 1) / history.PageSize
			if history.TotalMoves != 5 || history.TotalPages != wantPages {
				t.Errorf("Expected 5 moves over %d pages, got %d over %d", wantPages, history.TotalMoves, history.TotalPages)
			}
			if len(history.Moves) != len(tt.wantNumbers) {
				t.Fatalf("Expected %d moves, got %d", len(tt.wantNumbers), len(history.Moves))
			}
			for i, n := range tt.wantNumbers {
				if history.Moves[i].MoveNumber != n {
					t.Errorf("Move %d: expected move number %d, got %d", i, n, history.Moves[i].MoveNumber)
				}
			}
			if history.HasNext != tt.wantNext {
				t.Errorf("Expected HasNext=%v, got %v", tt.wantNext, history.HasNext)
			}
		})
	}
}

func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := svc.GetSession(ctx, id); err != nil {
					t.Errorf("GetSession failed: %v", err)
					return
				}
				if _, err := svc.GetGameState(ctx, id); err != nil {
					t.Errorf("GetGameState failed: %v", err)
					return
				}
				if _, err := svc.ListSessions(ctx); err != nil {
					t.Errorf("ListSessions failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestGameService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	a, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := svc.CreateSession(ctx, "test"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}

	info, err := svc.GetSession(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if info.GameConfig == nil || info.GameConfig.Name != "test" {
		t.Errorf("Expected session to carry its config, got %+v", info.GameConfig)
	}

	if err := svc.DeleteSession(ctx, a.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, a.ID); err == nil {
		t.Error("Expected deleted session to be gone")
	}
	if err := svc.DeleteSession(ctx, a.ID); err == nil {
		t.Error("Expected error deleting a missing session")
	}
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	configs, err := svc.ListConfigs(ctx)
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Errorf("Expected 2 configs, got %d", len(configs))
	}

	config, err := svc.LoadConfig(ctx, "test")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if action, ok := config.Action('W'); !ok || action != service.ActionUp {
		t.Errorf("Expected W bound to up, got %q (%v)", action, ok)
	}
}
