package config

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"

	"github.com/etchlabs/etch/pkg/logger"
)

// loader implements the Service interface for configuration resolution.
type loader struct {
	koanf      *koanf.Koanf
	validator  *validator.Validate
	metadata   Metadata
	metadataMu sync.RWMutex
}

// Metadata tracks which source provided each configuration key.
type Metadata struct {
	Sources  map[string]SourceType
	LoadedAt time.Time
}

// NewService creates a new configuration service with validation support.
func NewService() Service {
	return &loader{
		koanf:     koanf.New("."),
		validator: validator.New(),
		metadata:  Metadata{Sources: make(map[string]SourceType)},
	}
}

// Load resolves configuration from the given sources in precedence order.
// Absent file sources are bootstrapped with default content; these are repair
// actions, not failures. Resolution always succeeds with at least defaults.
func (l *loader) Load(ctx context.Context, sources ...Source) (*Config, []SkippedField, error) {
	return l.resolve(ctx, sources, true)
}

// Resolve is Load without filesystem repair side effects.
func (l *loader) Resolve(ctx context.Context, sources ...Source) (*Config, []SkippedField, error) {
	return l.resolve(ctx, sources, false)
}

func (l *loader) resolve(ctx context.Context, sources []Source, bootstrap bool) (*Config, []SkippedField, error) {
	log := logger.FromContext(ctx)
	l.reset()

	if err := l.loadDefaults(); err != nil {
		return nil, nil, err
	}

	var skipped []SkippedField
	for _, source := range sources {
		if source == nil {
			continue
		}
		if bootstrap {
			if repaired, err := l.bootstrapSource(ctx, source); err != nil {
				log.Warn("failed to create default config file", "scope", source.Type(), "error", err)
			} else if repaired {
				// A freshly written file contributes nothing beyond defaults.
				continue
			}
		}
		fragment, err := source.Load()
		if err != nil {
			// Malformed source: report and continue with the remaining layers.
			log.Warn("skipping unreadable config source", "scope", source.Type(), "error", err)
			continue
		}
		snapshot := l.snapshot()
		fragSkipped := l.overlay(fragment, source.Type())
		if _, err := l.unmarshalAndValidate(); err != nil {
			// The merged result no longer validates with this fragment
			// applied. Drop the whole fragment and keep the prior state.
			log.Warn("skipping config source that fails validation", "scope", source.Type(), "error", err)
			l.restore(snapshot)
			continue
		}
		skipped = append(skipped, fragSkipped...)
	}

	config, err := l.unmarshalAndValidate()
	if err != nil {
		return nil, skipped, err
	}
	for _, s := range skipped {
		log.Warn("skipping mistyped config value", "key", s.Key, "scope", s.Source, "reason", s.Reason)
	}
	return config, skipped, nil
}

// loaderState is a point-in-time copy of the merged configuration used to
// roll back a fragment that fails validation as a whole.
type loaderState struct {
	koanf   *koanf.Koanf
	sources map[string]SourceType
}

func (l *loader) snapshot() loaderState {
	l.metadataMu.RLock()
	sources := make(map[string]SourceType, len(l.metadata.Sources))
	for k, v := range l.metadata.Sources {
		sources[k] = v
	}
	l.metadataMu.RUnlock()
	return loaderState{koanf: l.koanf.Copy(), sources: sources}
}

func (l *loader) restore(state loaderState) {
	l.koanf = state.koanf
	l.metadataMu.Lock()
	l.metadata.Sources = state.sources
	l.metadataMu.Unlock()
}

// reset clears the configuration and metadata between loads.
func (l *loader) reset() {
	l.koanf = koanf.New(".")
	l.metadataMu.Lock()
	l.metadata.Sources = make(map[string]SourceType)
	l.metadata.LoadedAt = time.Now()
	l.metadataMu.Unlock()
}

// loadDefaults seeds the merged state with the built-in defaults.
func (l *loader) loadDefaults() error {
	if err := l.koanf.Load(rawMap(defaultFragment()), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	for _, key := range l.koanf.Keys() {
		l.trackSource(key, SourceDefault)
	}
	return nil
}

// defaultFragment builds the default configuration as a raw fragment keyed
// by on-disk field names.
func defaultFragment() map[string]any {
	d := Default()
	fragment := map[string]any{
		"debug":             d.Debug,
		"log_level":         d.LogLevel,
		"api_host":          d.APIHost,
		"api_port":          d.APIPort,
		"enable_caching":    d.EnableCaching,
		"enable_monitoring": d.EnableMonitoring,
		"install_dir":       d.InstallDir,
		"tools":             d.Tools,
		"workspace": map[string]any{
			"build_dir":   d.Workspace.BuildDir,
			"kernel_dirs": d.Workspace.KernelDirs,
		},
	}
	if d.APIKey != nil {
		fragment["api_key"] = d.APIKey
	}
	return fragment
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}

// bootstrapSource creates a missing config file for file-backed sources.
// The global scope receives a commented default template; the local scope
// receives the configuration resolved so far. Returns true when a file was
// written.
func (l *loader) bootstrapSource(ctx context.Context, source Source) (bool, error) {
	fileSource, ok := source.(*yamlProvider)
	if !ok || fileSource.Exists() {
		return false, nil
	}
	log := logger.FromContext(ctx)
	log.Info("config file not found, creating default", "scope", source.Type(), "path", fileSource.Path())
	if source.Type() == SourceGlobal {
		return true, writeTemplate(fileSource.Path())
	}
	current, err := l.unmarshalAndValidate()
	if err != nil {
		return false, err
	}
	return true, WriteConfig(fileSource.Path(), current)
}

// overlay applies one fragment onto the merged state. Each field is validated
// against its declared type before it is set; a mistyped value keeps the
// prior value while the rest of the fragment still applies. Unknown keys are
// ignored, never rejected.
func (l *loader) overlay(fragment map[string]any, scope SourceType) []SkippedField {
	var skipped []SkippedField
	defs := Definitions()
	for key, value := range flattenFragment("", fragment) {
		def, known := defs.GetField(key)
		if !known {
			continue
		}
		coerced, err := coerceToType(value, def.Type)
		if err != nil {
			skipped = append(skipped, SkippedField{Key: key, Source: scope, Reason: err.Error()})
			continue
		}
		if err := l.koanf.Set(key, coerced); err != nil {
			skipped = append(skipped, SkippedField{Key: key, Source: scope, Reason: err.Error()})
			continue
		}
		l.trackSource(key, scope)
	}
	return skipped
}

// flattenFragment flattens nested maps into dot-notation keys. Lists and
// scalars are left as values so `tools` validates as a whole.
func flattenFragment(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for fk, fv := range flattenFragment(key, nested) {
				result[fk] = fv
			}
			continue
		}
		result[key] = v
	}
	return result
}

// coerceToType decodes value into an instance of t with weak typing, so env
// strings coerce to their declared field types. A value that cannot be
// represented as t returns an error.
func coerceToType(value any, t reflect.Type) (any, error) {
	out := reflect.New(t)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "koanf",
		Result:           out.Interface(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(value); err != nil {
		return nil, err
	}
	return out.Elem().Interface(), nil
}

// unmarshalAndValidate unmarshals the merged state and validates it.
func (l *loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	if err := l.koanf.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := l.Validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Validate checks if the configuration meets all validation requirements.
func (l *loader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if err := l.validator.Struct(config); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// GetSource returns the source type for a specific configuration key.
func (l *loader) GetSource(key string) SourceType {
	l.metadataMu.RLock()
	defer l.metadataMu.RUnlock()
	if source, ok := l.metadata.Sources[key]; ok {
		return source
	}
	return SourceDefault
}

// trackSource records which source provided a specific configuration key.
func (l *loader) trackSource(key string, source SourceType) {
	l.metadataMu.Lock()
	defer l.metadataMu.Unlock()
	l.metadata.Sources[key] = source
}
