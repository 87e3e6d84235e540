package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/packlayout/internal/model"
)

func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List algorithm names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rows := make([][]string, 0, len(model.Algorithms))
			for _, a := range model.Algorithms {
				status := "implemented"
				if !a.Implemented() {
					status = "runs maxrects"
				}
				rows = append(rows, []string{a.String(), status})
			}
			c.printTable([]string{"Algorithm", "Status"}, rows, -1)
		},
	}
}
