package config

import "fmt"

// UnknownSettingError is raised when a field update targets a setting that
// does not exist. It is the single configuration error surfaced to callers
// as a hard failure; everything else degrades toward defaults.
type UnknownSettingError struct {
	Key string
}

func (e *UnknownSettingError) Error() string {
	return fmt.Sprintf("unknown setting: %s", e.Key)
}
