package project

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/packlayout/internal/model"
)

// maxRecentJobs bounds the recent jobs list kept in the config.
const maxRecentJobs = 10

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.packlayout/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".packlayout")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// SaveAppConfig persists an AppConfig to the given path as TOML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Keys missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	// Ensure RecentJobs is never nil
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	return config, nil
}

// AddRecentJob moves path to the front of the recent jobs list.
func AddRecentJob(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range config.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentJobs {
		recent = recent[:maxRecentJobs]
	}
	config.RecentJobs = recent
}
