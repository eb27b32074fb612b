package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultManager(t *testing.T) {
	t.Cleanup(ResetForTest)

	t.Run("Should return the same manager across calls", func(t *testing.T) {
		ResetForTest()
		assert.Same(t, DefaultManager(), DefaultManager())
	})

	t.Run("Should start fresh after a reset", func(t *testing.T) {
		ResetForTest()
		first := DefaultManager()
		ResetForTest()
		assert.NotSame(t, first, DefaultManager())
	})

	t.Run("Should serve injected config through package accessors", func(t *testing.T) {
		ResetForTest()
		injected := Default()
		injected.APIPort = 12345
		Set(injected)

		cfg, err := Get(context.Background())
		require.NoError(t, err)
		assert.Same(t, injected, cfg)
	})
}

func TestManagerFromContext(t *testing.T) {
	t.Cleanup(ResetForTest)

	t.Run("Should prefer the manager attached to the context", func(t *testing.T) {
		manager := newTestManager(t)
		ctx := ContextWithManager(context.Background(), manager)
		assert.Same(t, manager, ManagerFromContext(ctx))
	})

	t.Run("Should fall back to the default manager", func(t *testing.T) {
		ResetForTest()
		assert.Same(t, DefaultManager(), ManagerFromContext(context.Background()))
	})

	t.Run("Should resolve config through FromContext", func(t *testing.T) {
		manager := newTestManager(t)
		injected := Default()
		manager.Set(injected)
		ctx := ContextWithManager(context.Background(), manager)

		cfg, err := FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, injected, cfg)
	})
}
