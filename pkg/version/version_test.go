package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Run("Should return the build variables", func(t *testing.T) {
		info := Get()
		assert.Equal(t, Version, info.Version)
		assert.Equal(t, CommitHash, info.CommitHash)
		assert.Equal(t, BuildDate, info.BuildDate)
	})
}
