package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packlayout/internal/host"
	"github.com/piwi3910/packlayout/internal/model"
)

func (c *CLI) replayCommand() *cobra.Command {
	var (
		sizes     string
		algorithm string
	)

	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Replay a sequence of container resizes through a layout session",
		Long: `Replay feeds the items of a file into a layout session and resizes the
container once per --sizes entry, the way a host window would. Each frame
reports how many items entered, moved, stayed put or left the layout.`,
		Example: "  packlayout replay items.csv --sizes 1280x800,800x600,400x600 --algorithm treemap",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := parseSizes(sizes)
			if err != nil {
				return err
			}
			return c.runReplay(cmd, args[0], algorithm, dims)
		},
	}

	cmd.Flags().StringVar(&sizes, "sizes", "", "comma-separated container sizes, e.g. 800x600,400x600")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "algorithm (default from the job or config)")
	_ = cmd.MarkFlagRequired("sizes")

	return cmd
}

// parseSizes parses "WxH,WxH,..." into container sizes.
func parseSizes(s string) ([]model.Size, error) {
	var sizes []model.Size
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, h, ok := strings.Cut(strings.ToLower(part), "x")
		if !ok {
			return nil, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", part)
		}
		width, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid width in %q: %w", part, err)
		}
		height, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid height in %q: %w", part, err)
		}
		sizes = append(sizes, model.Size{Width: width, Height: height})
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

func (c *CLI) runReplay(cmd *cobra.Command, input, algorithm string, sizes []model.Size) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	job, err := c.loadInput(input)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("algorithm") {
		if job.Algorithm, err = model.ParseAlgorithm(algorithm); err != nil {
			return err
		}
	}
	cfg.ApplyToJob(&job)

	var rows [][]string
	session := host.NewSession(c.newEngine(), host.AnimatorFunc(func(f host.Frame) {
		var entered, moved, still int
		for _, t := range f.Transitions {
			switch {
			case t.Entering():
				entered++
			case t.Moved():
				moved++
			default:
				still++
			}
		}
		size := f.Result.ContainerSize
		rows = append(rows, []string{
			fmt.Sprintf("%.0fx%.0f", size.Width, size.Height),
			strconv.Itoa(entered),
			strconv.Itoa(moved),
			strconv.Itoa(still),
			strconv.Itoa(len(f.Exited)),
			fmt.Sprintf("%.1f%%", f.Result.Efficiency*100),
		})
	}))

	session.SetAlgorithm(job.Algorithm)
	session.SetOptions(job.Options)
	session.SetItems(job.Items)
	for _, size := range sizes {
		session.Resize(size.Width, size.Height)
	}

	c.printTitle(fmt.Sprintf("%s: %d items, %s", job.Name, len(job.Items), job.Algorithm))
	c.printTable([]string{"Size", "Entered", "Moved", "Still", "Exited", "Efficiency"}, rows, -1)
	return nil
}
