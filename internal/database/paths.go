package database

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName       = ".wine-trip-planner"
	ProfilesFileName = "profiles.json"
	SQLiteDBFileName = "data.db"
)

// GetAppDir returns ~/.wine-trip-planner, creating it if needed
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return EnsureDir(filepath.Join(homeDir, AppDirName))
}

// EnsureDir creates dir with owner-only permissions if it does not exist
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}
	return dir, nil
}

// ResolveDataDir returns override when set, otherwise the default app directory
func ResolveDataDir(override string) (string, error) {
	if override != "" {
		return EnsureDir(override)
	}
	return GetAppDir()
}

// GetProfilesFilePath returns <dataDir>/profiles.json
func GetProfilesFilePath(dataDir string) (string, error) {
	dir, err := ResolveDataDir(dataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProfilesFileName), nil
}

// GetDefaultDBPath returns the default SQLite database path: <dataDir>/data.db
func GetDefaultDBPath(dataDir string) (string, error) {
	dir, err := ResolveDataDir(dataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SQLiteDBFileName), nil
}
