package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

// FieldDef defines a configuration field with its metadata and typed
// accessors. The registry built from these is the single source of truth for
// defaults, environment mapping, and updates; it replaces reflective
// attribute lookup with accessors fixed at schema-definition time.
type FieldDef struct {
	Path    string                   // config path like "api_port" or "workspace.build_dir"
	Default any                      // default value
	EnvVar  string                   // environment variable name like "ETCH_API_PORT"
	Type    reflect.Type             // field type for overlay validation
	Help    string                   // human-readable description
	Get     func(*Config) any        // reads the field from a resolved config
	Set     func(*Config, any) error // validates and writes the field
}

// Registry holds all configuration field definitions.
type Registry struct {
	fields map[string]FieldDef
	order  []string
}

// NewRegistry creates an empty field registry.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]FieldDef)}
}

// Register adds a field definition to the registry.
func (r *Registry) Register(field *FieldDef) {
	if _, exists := r.fields[field.Path]; !exists {
		r.order = append(r.order, field.Path)
	}
	r.fields[field.Path] = *field
}

// GetField returns a field definition by path.
func (r *Registry) GetField(path string) (FieldDef, bool) {
	field, exists := r.fields[path]
	return field, exists
}

// Paths returns all field paths in registration order.
func (r *Registry) Paths() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// EnvMapping returns a map from environment variable name to field path.
func (r *Registry) EnvMapping() map[string]string {
	mapping := make(map[string]string)
	for path, field := range r.fields {
		if field.EnvVar != "" {
			mapping[field.EnvVar] = path
		}
	}
	return mapping
}

var (
	registry     *Registry
	registryOnce sync.Once
)

// Definitions returns the shared field registry, built once at first use.
func Definitions() *Registry {
	registryOnce.Do(func() {
		registry = createRegistry()
	})
	return registry
}

// decodeAs coerces value to T with weak typing, so "9000" assigns to an int
// field and "true" to a bool field. Incompatible values return an error.
func decodeAs[T any](value any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "koanf",
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(value); err != nil {
		return out, err
	}
	return out, nil
}

func setter[T any](assign func(*Config, T)) func(*Config, any) error {
	return func(cfg *Config, value any) error {
		typed, err := decodeAs[T](value)
		if err != nil {
			return fmt.Errorf("invalid value %v: %w", value, err)
		}
		assign(cfg, typed)
		return nil
	}
}

func createRegistry() *Registry {
	defaults := Default()
	r := NewRegistry()
	r.Register(&FieldDef{
		Path:    "debug",
		Default: defaults.Debug,
		EnvVar:  "ETCH_DEBUG",
		Type:    reflect.TypeOf(false),
		Help:    "Enable debug mode",
		Get:     func(c *Config) any { return c.Debug },
		Set:     setter(func(c *Config, v bool) { c.Debug = v }),
	})
	r.Register(&FieldDef{
		Path:    "log_level",
		Default: defaults.LogLevel,
		EnvVar:  "ETCH_LOG_LEVEL",
		Type:    reflect.TypeOf(""),
		Help:    "Logging level",
		Get:     func(c *Config) any { return c.LogLevel },
		Set:     setter(func(c *Config, v string) { c.LogLevel = v }),
	})
	r.Register(&FieldDef{
		Path:    "api_host",
		Default: defaults.APIHost,
		EnvVar:  "ETCH_API_HOST",
		Type:    reflect.TypeOf(""),
		Help:    "API server host",
		Get:     func(c *Config) any { return c.APIHost },
		Set:     setter(func(c *Config, v string) { c.APIHost = v }),
	})
	r.Register(&FieldDef{
		Path:    "api_port",
		Default: defaults.APIPort,
		EnvVar:  "ETCH_API_PORT",
		Type:    reflect.TypeOf(0),
		Help:    "API server port",
		Get:     func(c *Config) any { return c.APIPort },
		Set:     setter(func(c *Config, v int) { c.APIPort = v }),
	})
	r.Register(&FieldDef{
		Path:    "api_key",
		Default: defaults.APIKey,
		EnvVar:  "ETCH_API_KEY",
		Type:    reflect.TypeOf((*string)(nil)),
		Help:    "API authentication key",
		Get:     func(c *Config) any { return c.APIKey },
		Set:     setter(func(c *Config, v *string) { c.APIKey = v }),
	})
	r.Register(&FieldDef{
		Path:    "enable_caching",
		Default: defaults.EnableCaching,
		EnvVar:  "ETCH_ENABLE_CACHING",
		Type:    reflect.TypeOf(false),
		Help:    "Enable response caching",
		Get:     func(c *Config) any { return c.EnableCaching },
		Set:     setter(func(c *Config, v bool) { c.EnableCaching = v }),
	})
	r.Register(&FieldDef{
		Path:    "enable_monitoring",
		Default: defaults.EnableMonitoring,
		EnvVar:  "ETCH_ENABLE_MONITORING",
		Type:    reflect.TypeOf(false),
		Help:    "Enable monitoring",
		Get:     func(c *Config) any { return c.EnableMonitoring },
		Set:     setter(func(c *Config, v bool) { c.EnableMonitoring = v }),
	})
	r.Register(&FieldDef{
		Path:    "install_dir",
		Default: defaults.InstallDir,
		EnvVar:  "ETCH_INSTALL_DIR",
		Type:    reflect.TypeOf(""),
		Help:    "Installation directory for etch",
		Get:     func(c *Config) any { return c.InstallDir },
		Set:     setter(func(c *Config, v string) { c.InstallDir = v }),
	})
	r.Register(&FieldDef{
		Path:    "tools",
		Default: defaults.Tools,
		Type:    reflect.TypeOf([]ToolConfig(nil)),
		Help:    "External tool paths with validation status",
		Get:     func(c *Config) any { return c.Tools },
		Set:     setter(func(c *Config, v []ToolConfig) { c.Tools = v }),
	})
	r.Register(&FieldDef{
		Path:    "workspace",
		Default: defaults.Workspace,
		Type:    reflect.TypeOf(WorkspaceConfig{}),
		Help:    "Workspace paths",
		Get:     func(c *Config) any { return c.Workspace },
		Set:     setter(func(c *Config, v WorkspaceConfig) { c.Workspace = v }),
	})
	r.Register(&FieldDef{
		Path:    "workspace.build_dir",
		Default: defaults.Workspace.BuildDir,
		Type:    reflect.TypeOf(""),
		Help:    "Build directory",
		Get:     func(c *Config) any { return c.Workspace.BuildDir },
		Set:     setter(func(c *Config, v string) { c.Workspace.BuildDir = v }),
	})
	r.Register(&FieldDef{
		Path:    "workspace.kernel_dirs",
		Default: defaults.Workspace.KernelDirs,
		Type:    reflect.TypeOf([]string(nil)),
		Help:    "Directories to search for kernels",
		Get:     func(c *Config) any { return c.Workspace.KernelDirs },
		Set:     setter(func(c *Config, v []string) { c.Workspace.KernelDirs = v }),
	})
	return r
}
