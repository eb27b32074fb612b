package config

import (
	"fmt"
	"os"
	"strings"

	env "github.com/knadh/koanf/providers/env/v2"
	"gopkg.in/yaml.v3"
)

const envPrefix = "ETCH_"

// yamlProvider implements Source for a single YAML config file scope.
type yamlProvider struct {
	path  string
	scope SourceType
}

// NewYAMLProvider creates a configuration source reading the YAML file at
// path, attributed to the given scope (SourceGlobal or SourceLocal).
func NewYAMLProvider(path string, scope SourceType) Source {
	return &yamlProvider{path: path, scope: scope}
}

// Load reads the file and parses it as a key-value document. A missing file
// contributes an empty fragment; this is not an error. A file that exists
// but cannot be parsed returns an error so the caller can report and skip it.
func (y *yamlProvider) Load() (map[string]any, error) {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", y.path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", y.path, err)
	}
	// An empty document parses to nil and contributes nothing.
	return filterNilValues(doc), nil
}

// Exists reports whether the underlying file is present, so the loader can
// decide whether to bootstrap it.
func (y *yamlProvider) Exists() bool {
	_, err := os.Stat(y.path)
	return err == nil
}

// Path returns the file path backing this source.
func (y *yamlProvider) Path() string {
	return y.path
}

func (y *yamlProvider) Type() SourceType {
	return y.scope
}

// filterNilValues recursively removes nil values from a fragment so an
// explicit `key:` with no value never overrides an existing value.
func filterNilValues(m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			filtered := filterNilValues(nested)
			if len(filtered) > 0 {
				result[k] = filtered
			}
			continue
		}
		result[k] = v
	}
	return result
}

// envProvider implements Source for ETCH_-prefixed environment variables.
type envProvider struct{}

// NewEnvProvider creates a configuration source backed by the process
// environment. Every variable named ETCH_<FIELD> maps, case-insensitively,
// to the top-level field whose name equals the remainder.
func NewEnvProvider() Source {
	return &envProvider{}
}

func (e *envProvider) Load() (map[string]any, error) {
	provider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key string, value string) (string, any) {
			remainder := strings.TrimPrefix(key, envPrefix)
			return strings.ToLower(remainder), value
		},
	})
	data, err := provider.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}
	return data, nil
}

func (e *envProvider) Type() SourceType {
	return SourceEnv
}
