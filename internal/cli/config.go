package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/piwi3910/packlayout/internal/model"
	"github.com/piwi3910/packlayout/internal/project"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, initialize, back up and restore the configuration",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configExportCommand())
	cmd.AddCommand(c.configImportCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			c.printf("# %s\n", c.configFile())
			return toml.NewEncoder(c.out).Encode(cfg)
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
				return err
			}
			c.printSuccess("Wrote default config")
			c.printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func (c *CLI) configExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Back up config, custom presets and recent jobs to a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			custom, err := project.LoadCustomPresets(c.presetsFile())
			if err != nil {
				return err
			}
			warnings, err := project.ExportAllData(args[0], cfg, custom)
			for _, w := range warnings {
				c.Logger.Warn(w)
			}
			if err != nil {
				return err
			}
			c.printSuccess("Exported config, %d presets and %d recent jobs", len(custom), len(cfg.RecentJobs)-len(warnings))
			c.printFile(args[0])
			return nil
		},
	}
}

func (c *CLI) configImportCommand() *cobra.Command {
	var restoreJobs bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Restore config and custom presets from a backup",
		Long: `Restore config and custom presets from a backup written by 'config export'.
With --restore-jobs, saved jobs are written back to their original paths
unless a file already exists there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(c.configFile(), backup.Config); err != nil {
				return err
			}
			if err := project.SaveCustomPresets(c.presetsFile(), backup.Presets); err != nil {
				return err
			}

			restored := 0
			if restoreJobs {
				for path, job := range backup.Jobs {
					if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
						c.Logger.Warn("Not overwriting existing job", "path", path)
						continue
					}
					if err := project.SaveJob(path, job); err != nil {
						c.Logger.Warn("Could not restore job", "path", path, "error", err)
						continue
					}
					restored++
				}
			}

			c.printSuccess("Imported backup from %s (version %s)", backup.CreatedAt, backup.Version)
			c.printKeyValue("Presets", fmt.Sprintf("%d", len(backup.Presets)))
			c.printKeyValue("Jobs", fmt.Sprintf("%d saved, %d restored", len(backup.Jobs), restored))
			c.printFile(c.configFile())
			return nil
		},
	}

	cmd.Flags().BoolVar(&restoreJobs, "restore-jobs", false, "write saved jobs back to their original paths")
	return cmd
}
