package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/packlayout/internal/model"
)

// Format is an on-disk encoding for jobs and results.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension.
// Anything other than .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Marshal encodes v in the given format.
func Marshal(format Format, v interface{}) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func unmarshal(format Format, data []byte, v interface{}) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

func writeFile(path string, v interface{}) error {
	data, err := Marshal(FormatForPath(path), v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveJob writes a job as JSON or YAML depending on the file extension.
func SaveJob(path string, job model.Job) error {
	if err := writeFile(path, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// LoadJob reads a job written by SaveJob or by hand. Algorithm and sort
// names are validated while decoding. Items without an ID get a random one.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job: %w", err)
	}
	job := model.NewJob()
	if err := unmarshal(FormatForPath(path), data, &job); err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job %s: %w", path, err)
	}
	if job.Items == nil {
		job.Items = []model.PackableItem{}
	}
	model.AssignMissingIDs(job.Items)
	return job, nil
}

// SaveResult writes a packing result as JSON or YAML.
func SaveResult(path string, result model.PackingResult) error {
	if err := writeFile(path, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// LoadResult reads a packing result. A job file with an embedded result is
// accepted as well.
func LoadResult(path string) (model.PackingResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PackingResult{}, fmt.Errorf("failed to read result: %w", err)
	}
	format := FormatForPath(path)

	var job model.Job
	if err := unmarshal(format, data, &job); err == nil && job.Result != nil {
		return *job.Result, nil
	}

	var result model.PackingResult
	if err := unmarshal(format, data, &result); err != nil {
		return model.PackingResult{}, fmt.Errorf("failed to parse result %s: %w", path, err)
	}
	if result.Packed == nil {
		result.Packed = []model.PackedRect{}
	}
	if result.Unpacked == nil {
		result.Unpacked = []string{}
	}
	return result, nil
}
