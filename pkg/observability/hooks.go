// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about layout builds, visualization state
// changes, and navigation.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import cycles
// and keeps the core packages free of observability frameworks.
//
// # Usage
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutHooks receives events from layout construction.
type LayoutHooks interface {
	// OnBuildStart records the start of a snapshot build.
	OnBuildStart(ctx context.Context, descriptorCount int)

	// OnBuildComplete records the outcome of a snapshot build.
	OnBuildComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)
}

// StateHooks receives events from the visualization state store.
type StateHooks interface {
	// OnTagChange records one atomic tag mutation.
	OnTagChange(ctx context.Context, tag string, affected int, present bool)

	// OnReset records a wholesale state reset.
	OnReset(ctx context.Context)
}

// NavigationHooks receives events from the navigation controller.
type NavigationHooks interface {
	// OnFocus records a focus request and whether the target existed.
	OnFocus(ctx context.Context, index int, found bool)

	// OnSnapshotReplaced records a successful snapshot replacement.
	OnSnapshotReplaced(ctx context.Context, nodeCount int)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnBuildStart(context.Context, int)                          {}
func (NoopLayoutHooks) OnBuildComplete(context.Context, int, time.Duration, error) {}

// NoopStateHooks is a no-op implementation of StateHooks.
type NoopStateHooks struct{}

func (NoopStateHooks) OnTagChange(context.Context, string, int, bool) {}
func (NoopStateHooks) OnReset(context.Context)                        {}

// NoopNavigationHooks is a no-op implementation of NavigationHooks.
type NoopNavigationHooks struct{}

func (NoopNavigationHooks) OnFocus(context.Context, int, bool)      {}
func (NoopNavigationHooks) OnSnapshotReplaced(context.Context, int) {}

var (
	layoutHooks     LayoutHooks     = NoopLayoutHooks{}
	stateHooks      StateHooks      = NoopStateHooks{}
	navigationHooks NavigationHooks = NoopNavigationHooks{}
	hooksMu         sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any builds.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetStateHooks registers custom state hooks.
// This should be called once at application startup.
func SetStateHooks(h StateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stateHooks = h
	}
}

// SetNavigationHooks registers custom navigation hooks.
// This should be called once at application startup.
func SetNavigationHooks(h NavigationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		navigationHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// State returns the registered state hooks.
func State() StateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stateHooks
}

// Navigation returns the registered navigation hooks.
func Navigation() NavigationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return navigationHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	stateHooks = NoopStateHooks{}
	navigationHooks = NoopNavigationHooks{}
}
