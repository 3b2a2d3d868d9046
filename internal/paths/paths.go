// Package paths resolves the configuration directory, the data directory,
// and the database file inside it.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative directory names used when nothing else is set.
const (
	DefaultConfigDirName = ".frontdesk"
	DefaultDataDirName   = ".frontdesk-db"
)

// DefaultDataFileName is the database file created in the data directory.
const DefaultDataFileName = "hotel.json"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "FRONTDESK_CONFIG_DIR"
	EnvDataDir   = "FRONTDESK_DATA_DIR"
)

// getwd can be overridden in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > FRONTDESK_CONFIG_DIR env > $(CWD)/.frontdesk.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > FRONTDESK_DATA_DIR env > $(CWD)/.frontdesk-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveDataFile returns the database file path. An empty configured value
// means hotel.json in dataDir; a relative one is taken relative to dataDir.
func ResolveDataFile(dataDir, configured string) string {
	if configured == "" {
		return filepath.Join(dataDir, DefaultDataFileName)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(dataDir, configured)
}
