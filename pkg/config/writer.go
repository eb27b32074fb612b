package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteConfig serializes the full configuration to the given file in
// deterministic, human-editable form: block style, 2-space indentation,
// field declaration order, nil fields omitted. The destination directory is
// created as needed and the file is overwritten unconditionally.
func WriteConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", path, err)
	}
	var buf bytes.Buffer
	writeHeader(&buf, path)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), configFilePerm); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// writeHeader prepends the fixed header identifying the file as generated.
func writeHeader(buf *bytes.Buffer, path string) {
	buf.WriteString("# Etch Configuration\n")
	buf.WriteString("# Generated automatically - edit as needed\n")
	fmt.Fprintf(buf, "# File: %s\n\n", path)
}

// defaultConfigTemplate is written when the global config file is missing.
// Values mirror the schema defaults so a bootstrapped file resolves
// identically to a fresh install.
const defaultConfigTemplate = `# Etch Configuration
# Generated automatically - edit as needed

# Application settings
debug: false
log_level: INFO

# API configuration
api_host: localhost
api_port: 8000

# Feature flags
enable_caching: true
enable_monitoring: false

# Tool paths
tools:
  - name: cmake
    path: cmake
    validated: false
  - name: ninja
    path: ninja
    validated: false
  - name: clang
    path: clang
    validated: false

# Workspace configuration
workspace:
  build_dir: ./build
  kernel_dirs:
    - kernel
    - kernels
    - ml_import
`

// writeTemplate bootstraps a missing config file with the commented default
// template.
func writeTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), configFilePerm); err != nil {
		return fmt.Errorf("failed to write config template %s: %w", path, err)
	}
	return nil
}
