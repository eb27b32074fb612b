package config

import (
	"context"
	"sync"
)

// Package-level default manager, resolved against the conventional paths.
// Consumers that need custom paths or isolation construct a Manager and
// attach it to their context instead.
var (
	defaultManager   *Manager
	defaultManagerMu sync.Mutex
)

// DefaultManager returns the process-wide manager, constructing it on first
// use. The manager itself guards the load, so concurrent first calls perform
// the bootstrap side effects at most once.
func DefaultManager() *Manager {
	defaultManagerMu.Lock()
	defer defaultManagerMu.Unlock()
	if defaultManager == nil {
		defaultManager = NewManager(NewService(), DefaultPaths())
	}
	return defaultManager
}

// Get returns the current configuration from the default manager, loading it
// on first use.
func Get(ctx context.Context) (*Config, error) {
	return DefaultManager().Get(ctx)
}

// Reload forces the default manager to re-read all sources.
func Reload(ctx context.Context) (*Config, error) {
	return DefaultManager().Reload(ctx)
}

// Set injects a configuration into the default manager (test injection).
func Set(cfg *Config) {
	DefaultManager().Set(cfg)
}

// ResetForTest discards the default manager so the next access starts from
// an uninitialized state.
func ResetForTest() {
	defaultManagerMu.Lock()
	defer defaultManagerMu.Unlock()
	defaultManager = nil
}
