package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Output format constants
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// resolveFormat picks the effective output format: an explicit flag wins,
// otherwise table on terminals and JSON when piped or in CI.
func resolveFormat(explicit string) (string, error) {
	switch explicit {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return explicit, nil
	case "":
		if isRunningInCI() || !isatty.IsTerminal(os.Stdout.Fd()) {
			return OutputFormatJSON, nil
		}
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", explicit)
	}
}

// isRunningInCI checks if we're running in a CI/CD environment
func isRunningInCI() bool {
	if os.Getenv("CI") != "" {
		return true
	}
	for _, v := range []string{
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"CIRCLECI",
		"TRAVIS",
		"BUILDKITE",
	} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// writeJSON writes data as indented JSON.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// writeYAML writes data as block-style YAML.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}
