// Package readiness holds the process-wide readiness state consulted by the
// orchestrator's readiness probe. The state is owned by the server instance
// and injected into handlers rather than referenced as a global.
package readiness

import "sync/atomic"

// State is the toggleable readiness flag. A new State reports ready.
type State struct {
	notReady atomic.Bool
}

// NewState creates a readiness state that starts ready.
func NewState() *State {
	return &State{}
}

// Ready reports whether the instance should receive traffic.
func (s *State) Ready() bool {
	return !s.notReady.Load()
}

// Enable marks the instance ready.
func (s *State) Enable() {
	s.notReady.Store(false)
}

// Disable marks the instance not ready.
func (s *State) Disable() {
	s.notReady.Store(true)
}
