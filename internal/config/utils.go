package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/kf/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func GetTagsDir(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.TagsSubDir)
}

func GetTrashDir(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.TrashSubDir)
}

func GetRecentPath(homeDir string) string {
	return filepath.Join(homeDir, constants.ConfigDir, constants.RecentFile)
}

// EnsureConfigExists scaffolds the config directory tree and an empty config
// file, then loads it once to catch unusable state before any command runs.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)

	for _, dir := range []string{
		filepath.Dir(configPath),
		GetTagsDir(homeDir),
		GetTrashDir(homeDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	if _, err := Load(homeDir); err != nil {
		return &ConfigInitError{
			msg: fmt.Sprintf("config file %s is not usable", configPath),
			err: err,
		}
	}

	return nil
}
