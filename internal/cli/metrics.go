package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packlayout/internal/engine"
	"github.com/piwi3910/packlayout/internal/model"
	"github.com/piwi3910/packlayout/internal/project"
)

func (c *CLI) metricsCommand() *cobra.Command {
	var (
		asJSON  bool
		minFree float64
	)

	cmd := &cobra.Command{
		Use:   "metrics [result]",
		Short: "Evaluate a saved packing result",
		Long: `Evaluate a packing result written by 'pack' (JSON or YAML), or a job file
saved with --save-job. Metrics are recomputed from the placements alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := project.LoadResult(args[0])
			if err != nil {
				return err
			}
			m := engine.Evaluate(result)

			if asJSON {
				data, err := project.Marshal(project.FormatJSON, m)
				if err != nil {
					return err
				}
				c.printf("%s\n", data)
				return nil
			}

			c.printTitle(fmt.Sprintf("%s layout", result.Algorithm))
			c.printKeyValue("Container", fmt.Sprintf("%.0f x %.0f", result.ContainerSize.Width, result.ContainerSize.Height))
			c.printKeyValue("Items", fmt.Sprintf("%d", m.ItemCount))
			c.printKeyValue("Unpacked", fmt.Sprintf("%d", len(result.Unpacked)))
			c.printKeyValue("Efficiency", percent(m.Efficiency))
			c.printKeyValue("Wasted", fmt.Sprintf("%.1f", m.WastedSpace))
			c.printKeyValue("Average area", fmt.Sprintf("%.1f", m.AverageItemArea))

			free := model.FreeRegions(result, minFree)
			c.printKeyValue("Free regions", fmt.Sprintf("%d (%.1f total)", len(free), model.TotalArea(free)))
			for _, r := range free {
				c.printf("    %s\n", styleDim.Render(fmt.Sprintf("%.0f x %.0f at (%.0f, %.0f)", r.Width, r.Height, r.X, r.Y)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print metrics as JSON")
	cmd.Flags().Float64Var(&minFree, "min-free", model.MinFreeDimension, "smallest side of a reported free region")
	return cmd
}
