package config

import (
	"context"
	"sync"

	"github.com/etchlabs/etch/pkg/logger"
)

// Manager owns the process-wide cached configuration. The uninitialized to
// loaded transition is mutex-guarded so at most one caller performs the load
// side effects (config file bootstrap) per process lifetime.
type Manager struct {
	service Service
	paths   Paths

	mu      sync.Mutex
	current *Config
	skipped []SkippedField
}

// NewManager creates a configuration manager resolving against the given
// paths. A nil service gets the default implementation.
func NewManager(service Service, paths Paths) *Manager {
	if service == nil {
		service = NewService()
	}
	return &Manager{service: service, paths: paths}
}

// sources returns the layered sources in precedence order: global file,
// local file, environment. Defaults are always applied first by the service.
func (m *Manager) sources() []Source {
	return []Source{
		NewYAMLProvider(m.paths.Global, SourceGlobal),
		NewYAMLProvider(m.paths.Local, SourceLocal),
		NewEnvProvider(),
	}
}

// Get returns the cached configuration, running the full load (including
// bootstrap side effects) on first use.
func (m *Manager) Get(ctx context.Context) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return m.current, nil
	}
	return m.loadLocked(ctx)
}

// Reload discards the cache and performs a fresh load. The returned instance
// is always distinct from any previously returned one.
func (m *Manager) Reload(ctx context.Context) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return m.loadLocked(ctx)
}

// Set injects a caller-supplied configuration, bypassing resolution. Used
// for test injection.
func (m *Manager) Set(cfg *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = cfg
	m.skipped = nil
}

// Skipped returns the fields skipped during the most recent load.
func (m *Manager) Skipped() []SkippedField {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SkippedField, len(m.skipped))
	copy(out, m.skipped)
	return out
}

// Service exposes the underlying resolution service (for source inspection).
func (m *Manager) Service() Service {
	return m.service
}

// Paths returns the persistence targets this manager resolves against.
func (m *Manager) Paths() Paths {
	return m.paths
}

func (m *Manager) loadLocked(ctx context.Context) (*Config, error) {
	logger.FromContext(ctx).Debug("loading configuration",
		"global", m.paths.Global, "local", m.paths.Local)
	cfg, skipped, err := m.service.Load(ctx, m.sources()...)
	if err != nil {
		return nil, err
	}
	m.current = cfg
	m.skipped = skipped
	return cfg, nil
}

// Save persists the cached configuration to the given scope.
func (m *Manager) Save(ctx context.Context, scope Scope) error {
	m.mu.Lock()
	cfg := m.current
	m.mu.Unlock()
	if cfg == nil {
		var err error
		if cfg, err = m.Get(ctx); err != nil {
			return err
		}
	}
	path := m.paths.ForScope(scope)
	if err := WriteConfig(path, cfg); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("configuration saved", "path", path)
	return nil
}

// UpdateField applies a single validated field mutation to the cached
// configuration. A key containing exactly one dot is shorthand for the
// section_field form (api.port updates api_port). Unknown settings raise
// UnknownSettingError; everything else is absorbed. When persist is set the
// local config file is rewritten immediately; a write failure is reported
// but does not roll back the in-memory mutation.
func (m *Manager) UpdateField(ctx context.Context, key string, value any, persist bool) error {
	cfg, err := m.Get(ctx)
	if err != nil {
		return err
	}
	canonical, err := CanonicalKey(key)
	if err != nil {
		return err
	}
	def, ok := Definitions().GetField(canonical)
	if !ok || def.Set == nil {
		return &UnknownSettingError{Key: canonical}
	}
	m.mu.Lock()
	err = def.Set(cfg, value)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	log.Info("setting updated", "key", canonical, "value", def.Get(cfg))
	if persist {
		if err := m.Save(ctx, ScopeLocal); err != nil {
			log.Error("failed to persist updated setting", "key", canonical, "error", err)
		}
	}
	return nil
}

// ResetToDefaults overwrites every field of the cached configuration with
// its schema default, optionally persisting to the local scope.
func (m *Manager) ResetToDefaults(ctx context.Context, persist bool) error {
	cfg, err := m.Get(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	*cfg = *Default()
	m.mu.Unlock()
	logger.FromContext(ctx).Info("settings reset to defaults")
	if persist {
		return m.Save(ctx, ScopeLocal)
	}
	return nil
}
