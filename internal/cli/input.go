package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/packlayout/internal/importer"
	"github.com/piwi3910/packlayout/internal/model"
	"github.com/piwi3910/packlayout/internal/project"
)

// loadInput reads a job from path. Spreadsheets and drawings only carry items,
// so the returned job has empty options for the caller to fill in.
func (c *CLI) loadInput(path string) (model.Job, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" || ext == ".yaml" || ext == ".yml" {
		job, err := project.LoadJob(path)
		if err != nil {
			return model.Job{}, err
		}
		if len(job.Items) == 0 {
			return model.Job{}, fmt.Errorf("%s: no items", path)
		}
		c.Logger.Debug("Loaded job", "path", path, "items", len(job.Items))
		return job, nil
	}

	var imported importer.ImportResult
	switch ext {
	case ".csv", ".tsv", ".txt":
		imported = importer.ImportCSV(path)
	case ".xlsx", ".xls":
		imported = importer.ImportExcel(path)
	case ".dxf":
		imported = importer.ImportDXF(path)
	default:
		return model.Job{}, fmt.Errorf("unsupported input format %q", ext)
	}

	for _, w := range imported.Warnings {
		c.Logger.Info(w, "file", filepath.Base(path))
	}
	for _, e := range imported.Errors {
		c.Logger.Error(e, "file", filepath.Base(path))
	}
	if len(imported.Items) == 0 {
		return model.Job{}, fmt.Errorf("%s: no items imported", path)
	}

	job := model.NewJob()
	job.Algorithm = ""
	job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	job.Items = imported.Items
	c.Logger.Debug("Imported items", "path", path, "items", len(job.Items), "errors", len(imported.Errors))
	return job, nil
}
