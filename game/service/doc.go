// Package service provides the business logic layer for the 2048 game.
//
// The service package implements:
//   - Multi-session game management
//   - Presentation config lookup
//   - Move processing and event extraction
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager resolves presentation configs by name.
//
// Architecture:
//
// The service layer sits between the transports (terminal UI and MCP) and the
// game engine. Each session owns its own engine, and the service serialises
// every engine call behind one lock, so transports never touch an engine
// directly.
//
// Usage:
//
//	sessionMgr := session.NewManager(session.SeededSources(seed))
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute moves
//	result, err := gameService.Move(ctx, sessionInfo.ID, "left", false)
//
// Events:
//
// Every move yields merge and spawn events, a no_change event when nothing
// slid, a victory event on the move that first creates a 2048 tile, and a
// game_over event once no direction can change the board.
package service
