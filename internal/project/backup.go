package project

import (
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/packlayout/internal/model"
)

// backupVersion is written into every backup file.
const backupVersion = "1.0.0"

// BackupData bundles the configuration, custom presets and recent jobs.
type BackupData struct {
	Version   string                  `json:"version" yaml:"version"`
	CreatedAt string                  `json:"created_at" yaml:"created_at"`
	Config    model.AppConfig         `json:"config" yaml:"config"`
	Presets   []model.ContainerPreset `json:"presets" yaml:"presets"`
	Jobs      map[string]model.Job    `json:"jobs" yaml:"jobs"` // Keyed by original path
}

// ExportAllData writes config, presets and every readable recent job to a
// single JSON or YAML file. Recent jobs that can no longer be read are skipped
// and returned as warnings.
func ExportAllData(exportPath string, config model.AppConfig, presets []model.ContainerPreset) ([]string, error) {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Presets:   presets,
		Jobs:      map[string]model.Job{},
	}
	if backup.Presets == nil {
		backup.Presets = []model.ContainerPreset{}
	}

	var warnings []string
	for _, path := range config.RecentJobs {
		job, err := LoadJob(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped recent job %s: %v", path, err))
			continue
		}
		backup.Jobs[path] = job
	}

	if err := writeFile(exportPath, backup); err != nil {
		return warnings, fmt.Errorf("failed to write backup file: %w", err)
	}
	return warnings, nil
}

// ImportAllData reads a backup file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := unmarshal(FormatForPath(importPath), data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	// Ensure slices and maps are never nil
	if backup.Config.RecentJobs == nil {
		backup.Config.RecentJobs = []string{}
	}
	if backup.Presets == nil {
		backup.Presets = []model.ContainerPreset{}
	}
	if backup.Jobs == nil {
		backup.Jobs = map[string]model.Job{}
	}
	return backup, nil
}
