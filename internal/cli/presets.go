package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List container presets",
		Long: `List the built-in container presets together with custom ones from
presets.yaml next to the config file. A custom preset replaces a built-in one
of the same name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := c.loadPresets()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				source := "custom"
				if p.IsBuiltIn {
					source = "built-in"
				}
				rows = append(rows, []string{
					p.Name,
					fmt.Sprintf("%.0f x %.0f", p.Width, p.Height),
					fmt.Sprintf("%g", p.Padding),
					fmt.Sprintf("%g", p.Gap),
					source,
				})
			}
			c.printTable([]string{"Name", "Size", "Padding", "Gap", "Source"}, rows, -1)
			return nil
		},
	}
}
