// Package session provides in-memory session management for the 2048 game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Per-session random sources
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine.GameEngine plus metadata like
// creation time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups ignore case.
// Generated IDs are drawn from crypto/rand and regenerated on collision.
//
// Random Sources:
//
// A SourceFactory hands each new engine its own source. SeededSources derives
// them from one seed so a whole run can be replayed; RandomSources seeds each
// engine from crypto/rand.
//
// Usage:
//
//	manager := session.NewManager(session.SeededSources(42))
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Sessions live only as long as the process.
package session
