package config

import (
	"context"
)

// Config represents the resolved etch configuration.
// It provides type-safe access to all configuration values with validation.
// Field declaration order is the on-disk order used by the persistence writer.
type Config struct {
	Debug            bool            `koanf:"debug"             yaml:"debug"             env:"ETCH_DEBUG"`
	LogLevel         string          `koanf:"log_level"         yaml:"log_level"         env:"ETCH_LOG_LEVEL"         validate:"required"`
	APIHost          string          `koanf:"api_host"          yaml:"api_host"          env:"ETCH_API_HOST"          validate:"required"`
	APIPort          int             `koanf:"api_port"          yaml:"api_port"          env:"ETCH_API_PORT"          validate:"min=1,max=65535"`
	APIKey           *string         `koanf:"api_key"           yaml:"api_key,omitempty" env:"ETCH_API_KEY"`
	EnableCaching    bool            `koanf:"enable_caching"    yaml:"enable_caching"    env:"ETCH_ENABLE_CACHING"`
	EnableMonitoring bool            `koanf:"enable_monitoring" yaml:"enable_monitoring" env:"ETCH_ENABLE_MONITORING"`
	InstallDir       string          `koanf:"install_dir"       yaml:"install_dir"       env:"ETCH_INSTALL_DIR"       validate:"required"`
	Tools            []ToolConfig    `koanf:"tools"             yaml:"tools"`
	Workspace        WorkspaceConfig `koanf:"workspace"         yaml:"workspace"`
}

// ToolConfig records the location of an external build tool and whether the
// path has been checked against the filesystem.
type ToolConfig struct {
	Name      string `koanf:"name"      yaml:"name"      validate:"required"`
	Path      string `koanf:"path"      yaml:"path"      validate:"required"`
	Validated bool   `koanf:"validated" yaml:"validated"`
}

// WorkspaceConfig contains project workspace paths.
type WorkspaceConfig struct {
	BuildDir   string   `koanf:"build_dir"   yaml:"build_dir"   validate:"required"`
	KernelDirs []string `koanf:"kernel_dirs" yaml:"kernel_dirs"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Debug:            false,
		LogLevel:         "INFO",
		APIHost:          "localhost",
		APIPort:          8000,
		APIKey:           nil,
		EnableCaching:    true,
		EnableMonitoring: false,
		InstallDir:       DefaultInstallDir(),
		Tools: []ToolConfig{
			{Name: "cmake", Path: "cmake", Validated: false},
			{Name: "ninja", Path: "ninja", Validated: false},
			{Name: "clang", Path: "clang", Validated: false},
		},
		Workspace: WorkspaceConfig{
			BuildDir:   "./build",
			KernelDirs: []string{"kernel", "kernels", "ml_import"},
		},
	}
}

// SourceType identifies which layer provided a configuration value.
type SourceType string

const (
	SourceDefault SourceType = "default"
	SourceGlobal  SourceType = "global"
	SourceLocal   SourceType = "local"
	SourceEnv     SourceType = "env"
)

// Source defines the interface for configuration sources.
type Source interface {
	// Load returns the raw key-value fragment contributed by this source.
	// An absent underlying source contributes an empty fragment, not an error.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SkippedField records a fragment value that failed type validation during
// merging. The field keeps its prior value; the rest of the fragment applies.
type SkippedField struct {
	Key    string     `json:"key"`
	Source SourceType `json:"source"`
	Reason string     `json:"reason"`
}

// Service defines the configuration resolution service interface.
type Service interface {
	// Load resolves configuration from the given sources in precedence order,
	// bootstrapping absent config files with default content. Skipped fields
	// are returned alongside the resolved configuration.
	Load(ctx context.Context, sources ...Source) (*Config, []SkippedField, error)
	// Resolve is Load without filesystem repair side effects.
	Resolve(ctx context.Context, sources ...Source) (*Config, []SkippedField, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type for a specific configuration key.
	GetSource(key string) SourceType
}
