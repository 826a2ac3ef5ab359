package session

import (
	"sync"

	"github.com/wricardo/go2048/game/engine"
)

// SourceFactory makes the random source for a new session's engine
type SourceFactory func() engine.RandSource

// SeededSources derives every session source from one process-wide seed, so a
// run started with the same seed deals the same tiles in the same session order.
func SeededSources(seed uint64) SourceFactory {
	root := engine.NewSeededSource(seed)
	var mu sync.Mutex
	return func() engine.RandSource {
		mu.Lock()
		defer mu.Unlock()
		return engine.NewSeededSource(root.Uint64())
	}
}

// RandomSources gives each session an independent crypto-seeded source
func RandomSources() SourceFactory {
	return func() engine.RandSource {
		return engine.NewRandomSource()
	}
}
