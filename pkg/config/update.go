package config

import (
	"strings"
)

// CanonicalKey rewrites the dotted shorthand accepted by field updates:
// a key with exactly one dot becomes section_field (api.port -> api_port).
// Keys with more than one dot have no defined resolution and are rejected
// as unknown settings naming the offending key.
func CanonicalKey(key string) (string, error) {
	switch strings.Count(key, ".") {
	case 0:
		return key, nil
	case 1:
		section, field, _ := strings.Cut(key, ".")
		return section + "_" + field, nil
	default:
		return "", &UnknownSettingError{Key: key}
	}
}
