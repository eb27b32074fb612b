package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFormat(t *testing.T) {
	t.Run("Should honor an explicit format", func(t *testing.T) {
		for _, format := range []string{OutputFormatTable, OutputFormatJSON, OutputFormatYAML} {
			resolved, err := resolveFormat(format)
			require.NoError(t, err)
			assert.Equal(t, format, resolved)
		}
	})

	t.Run("Should reject unsupported formats", func(t *testing.T) {
		_, err := resolveFormat("xml")
		assert.Error(t, err)
	})

	t.Run("Should default to JSON in CI", func(t *testing.T) {
		t.Setenv("CI", "true")
		resolved, err := resolveFormat("")
		require.NoError(t, err)
		assert.Equal(t, OutputFormatJSON, resolved)
	})
}

func TestWriteJSON(t *testing.T) {
	t.Run("Should write indented JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeJSON(&buf, map[string]int{"api_port": 8000}))
		assert.Equal(t, "{\n  \"api_port\": 8000\n}\n", buf.String())
	})
}

func TestWriteYAML(t *testing.T) {
	t.Run("Should write block-style YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeYAML(&buf, map[string][]string{"kernel_dirs": {"kernel", "kernels"}}))
		assert.Equal(t, "kernel_dirs:\n  - kernel\n  - kernels\n", buf.String())
	})
}
