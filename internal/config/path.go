// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDataFile is where the budget lives unless configured otherwise.
const DefaultDataFile = "~/.local/share/kibble/budget.json"

// DataFile returns the resolved path of the budget data file, honoring the
// data.file setting (config file, KIBBLE_DATA_FILE, or --data-file flag).
func DataFile() string {
	path := viper.GetString("data.file")
	if path == "" {
		path = DefaultDataFile
	}
	return ExpandPath(path)
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}
