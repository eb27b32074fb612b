package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appDirName      = "etch"
	globalFileName  = "config.yaml"
	localFileName   = "etch.yaml"
	configDirPerm   = 0o755
	configFilePerm  = 0o644
	fallbackHomeDir = "."
)

// Paths holds the persistence targets for the two configuration scopes.
type Paths struct {
	// Global is the per-user config file (platform config dir + etch/config.yaml).
	Global string
	// Local is the project config file, relative to the working directory.
	Local string
}

// DefaultPaths returns the conventional global and local config file locations.
func DefaultPaths() Paths {
	return Paths{
		Global: GlobalConfigPath(),
		Local:  localFileName,
	}
}

// ForScope returns the path for the given scope.
func (p Paths) ForScope(scope Scope) string {
	if scope == ScopeGlobal {
		return p.Global
	}
	return p.Local
}

// GlobalConfigPath returns the per-user config file path following the
// platform's application config directory convention.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = fallbackHomeDir
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDirName, globalFileName)
}

// DefaultInstallDir returns the platform user data directory for etch.
func DefaultInstallDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		return filepath.Join(dir, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = fallbackHomeDir
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appDirName)
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appDirName)
		}
		return filepath.Join(home, "AppData", "Local", appDirName)
	default:
		return filepath.Join(home, ".local", "share", appDirName)
	}
}

// Scope selects the global or local persistence target.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)
