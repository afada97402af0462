// Package paths resolves where ezwrite keeps its files.
package paths

import (
	"os"
	"path/filepath"
)

// LocalConfigFile is the project-level config, relative to the working
// directory. It wins over the user config when present.
const LocalConfigFile = ".ezwrite/config.yaml"

// ConfigDir returns ~/.config/ezwrite, or .ezwrite when the home directory
// is unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".ezwrite"
	}
	return filepath.Join(home, ".config", "ezwrite")
}

// ConfigFile returns the user config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateFile returns the database of remembered cursor positions.
func StateFile() string {
	return filepath.Join(ConfigDir(), "state.db")
}

// TracesFile returns the default JSONL trace output.
func TracesFile() string {
	return filepath.Join(ConfigDir(), "traces", "traces.jsonl")
}

// ResolveConfig returns the config file to read: explicit if set, otherwise
// the local config when it exists, otherwise the user config.
func ResolveConfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if info, err := os.Stat(LocalConfigFile); err == nil && !info.IsDir() {
		return LocalConfigFile
	}
	return ConfigFile()
}
