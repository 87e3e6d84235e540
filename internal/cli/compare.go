package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packlayout/internal/engine"
	"github.com/piwi3910/packlayout/internal/model"
	"github.com/piwi3910/packlayout/internal/project"
)

func (c *CLI) compareCommand() *cobra.Command {
	var (
		opts       packOpts
		algorithms string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Run several algorithms over the same items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algs, err := parseAlgorithmList(algorithms)
			if err != nil {
				return err
			}
			return c.runCompare(cmd, args[0], algs, opts, asJSON)
		},
	}

	cmd.Flags().StringVar(&algorithms, "algorithms", "", "comma-separated algorithms (default: every implemented one)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "padding subtracted from every container edge")
	cmd.Flags().Float64Var(&opts.gap, "gap", 0, "spacing between items (maxrects)")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "placement order: priority (default), area, input")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "container preset")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")

	return cmd
}

// parseAlgorithmList parses a comma-separated list. An empty list selects
// every implemented algorithm.
func parseAlgorithmList(s string) ([]model.Algorithm, error) {
	if strings.TrimSpace(s) == "" {
		return engine.ImplementedAlgorithms(), nil
	}
	var algs []model.Algorithm
	for _, name := range strings.Split(s, ",") {
		alg, err := model.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algs = append(algs, alg)
	}
	return algs, nil
}

func (c *CLI) runCompare(cmd *cobra.Command, input string, algs []model.Algorithm, opts packOpts, asJSON bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	job, err := c.loadInput(input)
	if err != nil {
		return err
	}
	if err := c.applyPackFlags(cmd, &job, opts); err != nil {
		return err
	}
	cfg.ApplyToJob(&job)

	results := c.newEngine().Compare(algs, job.Items, job.Options)
	best, _ := engine.Best(results)

	if asJSON {
		data, err := project.Marshal(project.FormatJSON, results)
		if err != nil {
			return err
		}
		c.printf("%s\n", data)
		return nil
	}

	c.printTitle(fmt.Sprintf("%s: %d items in %.0f x %.0f", job.Name, len(job.Items),
		job.Options.ContainerWidth, job.Options.ContainerHeight))

	highlight := -1
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		if r.Algorithm == best.Algorithm && highlight < 0 {
			highlight = i
		}
		rows = append(rows, []string{
			r.Algorithm.String(),
			string(r.Result.Algorithm),
			fmt.Sprintf("%d", len(r.Result.Packed)),
			fmt.Sprintf("%d", r.UnpackedCount),
			fmt.Sprintf("%.1f%%", r.Metrics.Efficiency*100),
			fmt.Sprintf("%.1f", r.Metrics.WastedSpace),
		})
	}
	c.printTable([]string{"Requested", "Ran", "Packed", "Unpacked", "Efficiency", "Wasted"}, rows, highlight)
	if highlight >= 0 {
		c.printSuccess("Best: %s", best.Algorithm)
	}
	return nil
}
