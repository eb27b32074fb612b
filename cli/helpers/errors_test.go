package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCliError(t *testing.T) {
	t.Run("Should format code and message", func(t *testing.T) {
		err := NewCliError("UNSUPPORTED_SHELL", "unsupported shell")
		assert.Equal(t, "UNSUPPORTED_SHELL: unsupported shell", err.Error())
	})

	t.Run("Should include details when present", func(t *testing.T) {
		err := NewCliError("UNSUPPORTED_SHELL", "unsupported shell", "supported: bash, zsh, fish")
		assert.Equal(t, "UNSUPPORTED_SHELL: unsupported shell (supported: bash, zsh, fish)", err.Error())
	})
}
