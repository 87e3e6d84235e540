// Package cli implements the packlayout command-line interface.
//
// # Commands
//
//   - pack: lay out items from a job, CSV, XLSX or DXF file and export the result
//   - compare: run every implemented algorithm over the same input
//   - metrics: evaluate a stored result
//   - algorithms: list algorithm names
//   - replay: feed a sequence of container sizes through a host session
//   - presets: list container presets
//   - config: show, initialize, export and import the configuration
//
// All commands support --verbose (-v) for debug-level logging and --config to
// point at a different config file.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/packlayout/internal/engine"
	"github.com/piwi3910/packlayout/internal/model"
	"github.com/piwi3910/packlayout/internal/project"
)

// version is set at build time with -ldflags "-X .../internal/cli.version=...".
var version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configPath string
}

// New creates a CLI that logs to w at the given level and prints results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetOutput redirects command output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "packlayout",
		Short: "packlayout arranges rectangles inside a container",
		Long: `packlayout computes non-overlapping layouts for a set of rectangular items
inside a container, using a MaxRects bin packer or a priority-weighted
squarified treemap, and exports the result as JSON, YAML, PDF, XLSX, DXF or
a QR label sheet.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.packlayout/config.toml)")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.metricsCommand())
	root.AddCommand(c.algorithmsCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.configCommand())

	return root
}

// configFile returns the config path in effect.
func (c *CLI) configFile() string {
	if c.configPath != "" {
		return c.configPath
	}
	return project.DefaultConfigPath()
}

// loadConfig reads the config file. A log_level set there only applies when
// --verbose has not already lowered the level.
func (c *CLI) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(c.configFile())
	if err != nil {
		return model.AppConfig{}, err
	}
	if level := parseLevel(cfg.LogLevel); c.Logger.GetLevel() > level {
		c.Logger.SetLevel(level)
	}
	return cfg, nil
}

// presetsFile is kept next to the config file.
func (c *CLI) presetsFile() string {
	if c.configPath != "" {
		return filepath.Join(filepath.Dir(c.configPath), "presets.yaml")
	}
	return project.DefaultPresetsPath()
}

// loadPresets returns the built-in presets merged with the user's custom ones.
func (c *CLI) loadPresets() ([]model.ContainerPreset, error) {
	custom, err := project.LoadCustomPresets(c.presetsFile())
	if err != nil {
		return nil, err
	}
	return project.MergePresets(custom), nil
}

func (c *CLI) newEngine() *engine.Engine {
	return engine.New(c.Logger)
}
