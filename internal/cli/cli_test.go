package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/packlayout/internal/model"
	"github.com/piwi3910/packlayout/internal/project"
)

const sampleCSV = `id,label,width,height,priority
a,Alpha,100,50,3
b,Beta,50,50,2
c,Gamma,40,30,1
`

// testEnv is a scratch directory holding a config file and inputs.
type testEnv struct {
	t   *testing.T
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir()}
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	p := e.path(name)
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// run executes the root command and returns stdout and the log output.
func (e *testEnv) run(args ...string) (string, string, error) {
	e.t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.SetOutput(&out)

	root := c.RootCommand()
	root.SetArgs(append(args, "--config", e.path("config.toml")))
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.Execute()
	return out.String(), logs.String(), err
}

func TestPackCSVToStdout(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	out, _, err := env.run("pack", input, "--width", "200", "--height", "100")
	require.NoError(t, err)

	var result model.PackingResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, model.AlgorithmMaxRects, result.Algorithm)
	assert.Len(t, result.Packed, 3)
	assert.Empty(t, result.Unpacked)
	assert.Equal(t, model.Size{Width: 200, Height: 100}, result.ContainerSize)

	a, ok := result.Placement("a")
	require.True(t, ok)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 100, Height: 50}, a.Rect)
}

func TestPackUsesConfigDefaults(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)
	env.write("config.toml", `
default_algorithm = "treemap"
default_container_width = 300
default_container_height = 150
`)

	out, _, err := env.run("pack", input, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "algorithm: treemap")
	assert.Contains(t, out, "width: 300")
}

func TestPackFallbackIsLogged(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	out, logs, err := env.run("pack", input, "--width", "200", "--height", "100", "--algorithm", "shelf")
	require.NoError(t, err)
	assert.Contains(t, logs, "not implemented")

	var result model.PackingResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, model.AlgorithmMaxRects, result.Algorithm)
}

func TestPackStrict(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	_, _, err := env.run("pack", input, "--width", "200", "--height", "100", "--algorithm", "masonry", "--strict")
	assert.ErrorIs(t, err, model.ErrNotImplemented)

	_, _, err = env.run("pack", input, "--width", "200", "--height", "100", "--algorithm", "treemap", "--strict")
	assert.NoError(t, err)
}

func TestPackRejectsBadFlags(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	_, _, err := env.run("pack", input, "--algorithm", "skyline")
	assert.ErrorIs(t, err, model.ErrUnknownAlgorithm)

	_, _, err = env.run("pack", input, "--sort", "random")
	assert.ErrorIs(t, err, model.ErrUnknownSort)

	_, _, err = env.run("pack", input, "--preset", "nope")
	assert.ErrorContains(t, err, "unknown preset")

	_, _, err = env.run("pack", input, "--format", "svg")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = env.run("pack", input, "--format", "pdf")
	assert.ErrorContains(t, err, "--output is required")
}

func TestPackRejectsUnknownInput(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.svg", "<svg/>")

	_, _, err := env.run("pack", input)
	assert.ErrorContains(t, err, "unsupported input format")
}

func TestPackJobWithPresetAndSaveJob(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("job.yaml", `
name: Dashboard
algorithm: treemap
items:
  - id: chart
    min_width: 100
    min_height: 100
    priority: 3
  - id: table
    min_width: 100
    min_height: 100
    priority: 1
`)
	saved := env.path("jobs/dashboard.json")
	output := env.path("out/result.yaml")

	out, _, err := env.run("pack", input, "--preset", "square", "--padding", "10", "-o", output, "--save-job", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "Packed 2 of 2 items with treemap")

	result, err := project.LoadResult(output)
	require.NoError(t, err)
	assert.Equal(t, model.Size{Width: 1000, Height: 1000}, result.ContainerSize)
	assert.Len(t, result.Packed, 2)

	job, err := project.LoadJob(saved)
	require.NoError(t, err)
	require.NotNil(t, job.Result)
	assert.Equal(t, "Dashboard", job.Name)
	assert.Equal(t, 10.0, job.Options.Padding)

	cfg, err := project.LoadAppConfig(env.path("config.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{saved}, cfg.RecentJobs)
}

func TestPackExportFormats(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	tests := []struct {
		file   string
		format string
	}{
		{"layout.pdf", ""},
		{"layout.xlsx", ""},
		{"layout.dxf", ""},
		{"labels.pdf", "labels"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			args := []string{"pack", input, "--width", "200", "--height", "100", "-o", env.path(tt.file)}
			if tt.format != "" {
				args = append(args, "--format", tt.format)
			}
			_, _, err := env.run(args...)
			require.NoError(t, err)

			info, err := os.Stat(env.path(tt.file))
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		flag, output, want string
	}{
		{"", "", formatJSON},
		{"", "out.json", formatJSON},
		{"", "out.YML", formatYAML},
		{"", "out.pdf", formatPDF},
		{"", "out.xlsx", formatXLSX},
		{"", "out.dxf", formatDXF},
		{"labels", "out.pdf", formatLabels},
		{"YAML", "", formatYAML},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.flag, tt.output)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "outputFormat(%q, %q)", tt.flag, tt.output)
	}
}

func TestCompare(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	out, _, err := env.run("compare", input, "--width", "200", "--height", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "maxrects")
	assert.Contains(t, out, "treemap")
	assert.Contains(t, out, "Best:")
}

func TestCompareJSON(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	out, _, err := env.run("compare", input, "--width", "200", "--height", "100", "--algorithms", "maxrects,guillotine", "--json")
	require.NoError(t, err)

	var results []struct {
		Algorithm model.Algorithm     `json:"algorithm"`
		Result    model.PackingResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, model.AlgorithmGuillotine, results[1].Algorithm)
	assert.Equal(t, model.AlgorithmMaxRects, results[1].Result.Algorithm)
}

func TestParseAlgorithmList(t *testing.T) {
	algs, err := parseAlgorithmList("")
	require.NoError(t, err)
	assert.Equal(t, []model.Algorithm{model.AlgorithmMaxRects, model.AlgorithmTreemap}, algs)

	algs, err = parseAlgorithmList("Treemap, shelf")
	require.NoError(t, err)
	assert.Equal(t, []model.Algorithm{model.AlgorithmTreemap, model.AlgorithmShelf}, algs)

	_, err = parseAlgorithmList("maxrects,bogus")
	assert.ErrorIs(t, err, model.ErrUnknownAlgorithm)
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)
	output := env.path("result.json")

	_, _, err := env.run("pack", input, "--width", "200", "--height", "100", "-o", output)
	require.NoError(t, err)

	out, _, err := env.run("metrics", output, "--json")
	require.NoError(t, err)

	var m model.Metrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 3, m.ItemCount)
	assert.InDelta(t, (5000.0+2500+1200)/20000, m.Efficiency, 1e-9)
	assert.InDelta(t, 20000.0-8700, m.WastedSpace, 1e-9)

	out, _, err = env.run("metrics", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Efficiency")
	assert.Contains(t, out, "Free regions")
}

func TestAlgorithmsCommand(t *testing.T) {
	env := newTestEnv(t)
	out, _, err := env.run("algorithms")
	require.NoError(t, err)
	for _, a := range model.Algorithms {
		assert.Contains(t, out, a.String())
	}
	assert.Contains(t, out, "runs maxrects")
}

func TestReplay(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)

	out, _, err := env.run("replay", input, "--sizes", "200x100, 120x100,200x100", "--algorithm", "treemap")
	require.NoError(t, err)
	assert.Contains(t, out, "200x100")
	assert.Contains(t, out, "120x100")
	assert.Contains(t, out, "Entered")
}

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("800x600, 400X300")
	require.NoError(t, err)
	assert.Equal(t, []model.Size{{Width: 800, Height: 600}, {Width: 400, Height: 300}}, sizes)

	for _, bad := range []string{"", "800", "axb", "800x", ","} {
		_, err := parseSizes(bad)
		assert.Error(t, err, "parseSizes(%q)", bad)
	}
}

func TestPresetsIncludesCustom(t *testing.T) {
	env := newTestEnv(t)
	env.write("presets.yaml", `
- name: poster
  width: 1700
  height: 2400
- name: hd
  width: 1366
  height: 768
`)

	out, _, err := env.run("presets")
	require.NoError(t, err)
	assert.Contains(t, out, "poster")
	assert.Contains(t, out, "1366 x 768")
	assert.NotContains(t, out, "1920 x 1080")
}

func TestConfigInitAndShow(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("config", "init")
	require.NoError(t, err)
	assert.FileExists(t, env.path("config.toml"))

	_, _, err = env.run("config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, _, err = env.run("config", "init", "--force")
	assert.NoError(t, err)

	out, _, err := env.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `default_algorithm = "maxrects"`)
}

func TestConfigExportImport(t *testing.T) {
	env := newTestEnv(t)
	input := env.write("items.csv", sampleCSV)
	saved := env.path("job.json")
	env.write("presets.yaml", "- name: poster\n  width: 1700\n  height: 2400\n")

	_, _, err := env.run("pack", input, "--width", "200", "--height", "100", "--save-job", saved)
	require.NoError(t, err)

	backup := env.path("backup.yaml")
	out, _, err := env.run("config", "export", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "1 presets and 1 recent jobs")

	// Restore into a fresh environment after the original job is gone.
	require.NoError(t, os.Remove(saved))
	fresh := newTestEnv(t)
	out, _, err = fresh.run("config", "import", backup, "--restore-jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "1 saved, 1 restored")

	cfg, err := project.LoadAppConfig(fresh.path("config.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{saved}, cfg.RecentJobs)

	presets, err := project.LoadCustomPresets(fresh.path("presets.yaml"))
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "poster", presets[0].Name)

	job, err := project.LoadJob(saved)
	require.NoError(t, err)
	assert.Len(t, job.Items, 3)
}
