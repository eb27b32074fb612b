package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	return NewManager(nil, Paths{
		Global: filepath.Join(dir, "etch", "config.yaml"),
		Local:  filepath.Join(dir, "etch.yaml"),
	})
}

func TestManager_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Should load once and return the same instance", func(t *testing.T) {
		manager := newTestManager(t)

		first, err := manager.Get(ctx)
		require.NoError(t, err)
		second, err := manager.Get(ctx)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("Should bootstrap config files on first access", func(t *testing.T) {
		manager := newTestManager(t)

		_, err := manager.Get(ctx)
		require.NoError(t, err)
		assert.FileExists(t, manager.Paths().Global)
		assert.FileExists(t, manager.Paths().Local)
	})

	t.Run("Should report skipped fields from the load", func(t *testing.T) {
		manager := newTestManager(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(manager.Paths().Local), 0o755))
		require.NoError(t, os.WriteFile(manager.Paths().Local, []byte("api_port: not_a_number\n"), 0o644))

		cfg, err := manager.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.APIPort)
		skipped := manager.Skipped()
		require.Len(t, skipped, 1)
		assert.Equal(t, "api_port", skipped[0].Key)
	})
}

func TestManager_Reload(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return a fresh instance", func(t *testing.T) {
		manager := newTestManager(t)

		first, err := manager.Get(ctx)
		require.NoError(t, err)
		second, err := manager.Reload(ctx)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
	})

	t.Run("Should pick up file changes", func(t *testing.T) {
		manager := newTestManager(t)
		_, err := manager.Get(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(manager.Paths().Local, []byte("api_port: 9000\n"), 0o644))
		cfg, err := manager.Reload(ctx)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.APIPort)
	})
}

func TestManager_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Should bypass resolution entirely", func(t *testing.T) {
		manager := newTestManager(t)
		injected := Default()
		injected.APIPort = 12345
		manager.Set(injected)

		cfg, err := manager.Get(ctx)
		require.NoError(t, err)
		assert.Same(t, injected, cfg)
		// No load ran, so nothing was bootstrapped.
		assert.NoFileExists(t, manager.Paths().Global)
		assert.NoFileExists(t, manager.Paths().Local)
	})
}

func TestManager_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Should persist the cached config to the chosen scope", func(t *testing.T) {
		manager := newTestManager(t)
		cfg := Default()
		cfg.APIPort = 9000
		manager.Set(cfg)

		require.NoError(t, manager.Save(ctx, ScopeLocal))
		data, err := os.ReadFile(manager.Paths().Local)
		require.NoError(t, err)
		assert.Contains(t, string(data), "api_port: 9000")
		assert.NoFileExists(t, manager.Paths().Global)

		require.NoError(t, manager.Save(ctx, ScopeGlobal))
		assert.FileExists(t, manager.Paths().Global)
	})
}

func TestManager_UpdateField(t *testing.T) {
	ctx := context.Background()

	t.Run("Should update a field by its plain name", func(t *testing.T) {
		manager := newTestManager(t)
		manager.Set(Default())

		require.NoError(t, manager.UpdateField(ctx, "debug", "true", false))
		cfg, err := manager.Get(ctx)
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
	})

	t.Run("Should accept the one-dot shorthand", func(t *testing.T) {
		manager := newTestManager(t)
		manager.Set(Default())

		require.NoError(t, manager.UpdateField(ctx, "api.port", "9999", false))
		cfg, err := manager.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 9999, cfg.APIPort)
	})

	t.Run("Should reject unknown settings with the canonical key", func(t *testing.T) {
		manager := newTestManager(t)
		manager.Set(Default())

		err := manager.UpdateField(ctx, "api.invalid", "x", false)
		require.Error(t, err)
		var unknownErr *UnknownSettingError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "api_invalid", unknownErr.Key)
		assert.Contains(t, err.Error(), "api_invalid")
	})

	t.Run("Should reject keys with more than one dot", func(t *testing.T) {
		manager := newTestManager(t)
		manager.Set(Default())

		err := manager.UpdateField(ctx, "a.b.c", "x", false)
		require.Error(t, err)
		var unknownErr *UnknownSettingError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "a.b.c", unknownErr.Key)
	})

	t.Run("Should leave the config unchanged on a type mismatch", func(t *testing.T) {
		manager := newTestManager(t)
		manager.Set(Default())

		err := manager.UpdateField(ctx, "api_port", "not_a_number", false)
		require.Error(t, err)
		cfg, getErr := manager.Get(ctx)
		require.NoError(t, getErr)
		assert.Equal(t, 8000, cfg.APIPort)
	})

	t.Run("Should persist to the local file when requested", func(t *testing.T) {
		manager := newTestManager(t)
		manager.Set(Default())

		require.NoError(t, manager.UpdateField(ctx, "api_port", "9999", true))
		data, err := os.ReadFile(manager.Paths().Local)
		require.NoError(t, err)
		assert.Contains(t, string(data), "api_port: 9999")
	})

	t.Run("Should not persist when persist is disabled", func(t *testing.T) {
		manager := newTestManager(t)
		manager.Set(Default())

		require.NoError(t, manager.UpdateField(ctx, "api_port", "9999", false))
		assert.NoFileExists(t, manager.Paths().Local)
	})
}

func TestManager_ResetToDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("Should restore every field to its default", func(t *testing.T) {
		manager := newTestManager(t)
		cfg := Default()
		cfg.Debug = true
		cfg.APIPort = 9000
		cfg.Tools = nil
		manager.Set(cfg)

		require.NoError(t, manager.ResetToDefaults(ctx, false))
		current, err := manager.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, Default(), current)
	})

	t.Run("Should persist defaults when requested", func(t *testing.T) {
		manager := newTestManager(t)
		cfg := Default()
		cfg.APIPort = 9000
		manager.Set(cfg)

		require.NoError(t, manager.ResetToDefaults(ctx, true))
		data, err := os.ReadFile(manager.Paths().Local)
		require.NoError(t, err)
		assert.Contains(t, string(data), "api_port: 8000")
	})
}
