package logger

import (
	"bytes"
	"context"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Run("Should map known levels", func(t *testing.T) {
		assert.Equal(t, charmlog.DebugLevel, DebugLevel.ToCharmlogLevel())
		assert.Equal(t, charmlog.InfoLevel, InfoLevel.ToCharmlogLevel())
		assert.Equal(t, charmlog.WarnLevel, WarnLevel.ToCharmlogLevel())
		assert.Equal(t, charmlog.ErrorLevel, ErrorLevel.ToCharmlogLevel())
	})

	t.Run("Should default unknown levels to info", func(t *testing.T) {
		assert.Equal(t, charmlog.InfoLevel, LogLevel("verbose").ToCharmlogLevel())
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write structured output", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.Output = &buf
		log := NewLogger(cfg)

		log.Info("config loaded", "path", "etch.yaml")
		assert.Contains(t, buf.String(), "config loaded")
		assert.Contains(t, buf.String(), "etch.yaml")
	})

	t.Run("Should suppress messages below the level", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.Output = &buf
		cfg.Level = ErrorLevel
		log := NewLogger(cfg)

		log.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("Should carry fields added with With", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.Output = &buf
		log := NewLogger(cfg).With("scope", "global")

		log.Warn("skipping source")
		assert.Contains(t, buf.String(), "scope")
		assert.Contains(t, buf.String(), "global")
	})

	t.Run("Should fall back to defaults on nil config", func(t *testing.T) {
		assert.NotNil(t, NewLogger(nil))
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("Should build a logger for every flag value", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "warning", "error", "typo"} {
			assert.NotNil(t, SetupLogger(level, false))
		}
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return the logger stored in the context", func(t *testing.T) {
		log := NewLogger(DefaultConfig())
		ctx := ContextWithLogger(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("Should never return nil", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
		require.NotNil(t, FromContext(nil)) //nolint:staticcheck
	})
}
