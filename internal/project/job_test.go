package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/packlayout/internal/model"
)

func sampleJob() model.Job {
	job := model.NewJob()
	job.Name = "Dashboard"
	job.Algorithm = model.AlgorithmTreemap
	job.Options = model.PackingOptions{ContainerWidth: 400, ContainerHeight: 300, Padding: 4, SortBy: model.SortArea}
	job.Items = []model.PackableItem{
		{ID: "a", Label: "Chart", MinWidth: 200, MinHeight: 150, MaxWidth: 300, Priority: 10},
		{ID: "b", MinWidth: 100, MinHeight: 50, Priority: 2},
	}
	return job
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("job.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("JOB.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("job.json"))
	assert.Equal(t, FormatJSON, FormatForPath("job"))
}

func TestSaveLoadJob_RoundTrip(t *testing.T) {
	for _, name := range []string{"job.json", "job.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		job := sampleJob()

		require.NoError(t, SaveJob(path, job))
		loaded, err := LoadJob(path)
		require.NoError(t, err, name)

		assert.Equal(t, job, loaded, name)
	}
}

func TestLoadJob_HandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yml")
	content := `name: tiles
algorithm: Guillotine
options:
  container_width: 200
  container_height: 100
items:
  - id: x
    min_width: 50
    min_height: 50
    priority: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	job, err := LoadJob(path)
	require.NoError(t, err)
	assert.Equal(t, "tiles", job.Name)
	assert.Equal(t, model.AlgorithmGuillotine, job.Algorithm)
	assert.Equal(t, 200.0, job.Options.ContainerWidth)
	require.Len(t, job.Items, 1)
	assert.Equal(t, "x", job.Items[0].ID)
}

func TestLoadJob_DefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"options": {"container_width": 10, "container_height": 10}}`), 0644))

	job, err := LoadJob(path)
	require.NoError(t, err)
	assert.Equal(t, "Untitled", job.Name)
	assert.Equal(t, model.AlgorithmMaxRects, job.Algorithm)
	assert.NotNil(t, job.Items)
}

func TestLoadJob_AssignsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	content := `{"items": [{"id": "a", "min_width": 1, "min_height": 1}, {"min_width": 2, "min_height": 2}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	job, err := LoadJob(path)
	require.NoError(t, err)
	require.Len(t, job.Items, 2)
	assert.Equal(t, "a", job.Items[0].ID)
	assert.Len(t, job.Items[1].ID, 8)
}

func TestLoadJob_UnknownAlgorithm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"algorithm": "spiral"}`), 0644))

	_, err := LoadJob(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownAlgorithm)
}

func TestLoadJob_MissingFile(t *testing.T) {
	_, err := LoadJob(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestSaveLoadResult(t *testing.T) {
	result := model.NewResult(model.AlgorithmMaxRects, model.Size{Width: 400, Height: 300})
	result.Packed = append(result.Packed, model.PackedRect{ID: "a", Rect: model.Rect{Width: 200, Height: 150}})
	result.Unpacked = append(result.Unpacked, "c")
	result.Efficiency = 0.25

	for _, name := range []string{"result.json", "result.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, SaveResult(path, result))

		loaded, err := LoadResult(path)
		require.NoError(t, err, name)
		assert.Equal(t, result, loaded, name)
	}
}

func TestLoadResult_FromJobWithResult(t *testing.T) {
	job := sampleJob()
	result := model.NewResult(model.AlgorithmTreemap, model.Size{Width: 400, Height: 300})
	result.Packed = append(result.Packed, model.PackedRect{ID: "a", Rect: model.Rect{Width: 400, Height: 300}})
	job.Result = &result

	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, SaveJob(path, job))

	loaded, err := LoadResult(path)
	require.NoError(t, err)
	assert.Equal(t, result, loaded)
}
