// Package observability provides hooks for lattice and matcher events.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific metrics or tracing backends. Consumers register
// hooks at startup; the lattice and the mapping generator call them as they
// work.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for each event category
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMatchHooks(&myMatchHooks{})
//	    // ... run matches
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Match().OnSearchStart("subgraph", 3, 5)
//	// ... enumerate mappings ...
//	observability.Match().OnSearchExhausted("subgraph", found, elapsed)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Lattice Hooks
// =============================================================================

// LatticeHooks receives events from type lattice mutations.
type LatticeHooks interface {
	// OnTypeAdded records a type joining a lattice.
	OnTypeAdded(label string)

	// OnTypeRemoved records a type leaving a lattice.
	OnTypeRemoved(label string)

	// OnOrderConflict records a rejected edge that would have closed a cycle.
	OnOrderConflict(parent, child string)
}

// =============================================================================
// Match Hooks
// =============================================================================

// MatchHooks receives events from mapping generators.
type MatchHooks interface {
	// OnSearchStart records a generator beginning its search.
	OnSearchStart(mode string, firstSize, secondSize int)

	// OnMapping records a mapping accepted by a generator.
	OnMapping(mode string, concepts, relations int)

	// OnSearchExhausted records a generator proving no further mapping exists.
	OnSearchExhausted(mode string, produced int, elapsed time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLatticeHooks is a no-op implementation of LatticeHooks.
type NoopLatticeHooks struct{}

func (NoopLatticeHooks) OnTypeAdded(string)             {}
func (NoopLatticeHooks) OnTypeRemoved(string)           {}
func (NoopLatticeHooks) OnOrderConflict(string, string) {}

// NoopMatchHooks is a no-op implementation of MatchHooks.
type NoopMatchHooks struct{}

func (NoopMatchHooks) OnSearchStart(string, int, int)               {}
func (NoopMatchHooks) OnMapping(string, int, int)                   {}
func (NoopMatchHooks) OnSearchExhausted(string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	latticeHooks LatticeHooks = NoopLatticeHooks{}
	matchHooks   MatchHooks   = NoopMatchHooks{}
	hooksMu      sync.RWMutex
)

// SetLatticeHooks registers custom lattice hooks.
// This should be called once at application startup before any lattice is built.
func SetLatticeHooks(h LatticeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		latticeHooks = h
	}
}

// SetMatchHooks registers custom match hooks.
// This should be called once at application startup before any matching.
func SetMatchHooks(h MatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		matchHooks = h
	}
}

// Lattice returns the registered lattice hooks.
func Lattice() LatticeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return latticeHooks
}

// Match returns the registered match hooks.
func Match() MatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return matchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	latticeHooks = NoopLatticeHooks{}
	matchHooks = NoopMatchHooks{}
}
