package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var parkCmd = &cobra.Command{
	Use:     "park <position>",
	Short:   "Slew the telescope to a named park position",
	GroupID: "observing",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Fprintln(out, "error: expected tel park <position>")
			fmt.Fprintln(out, "valid park positions are:")
			for _, p := range ops.ParkPositions() {
				fmt.Fprintf(out, "  %-8s %s\n", p.Name, p.Description)
			}
			exitCode = telcode.UsageError
			return
		}
		run(func(o *ops.Ops) telcode.Code {
			return o.Park(context.Background(), args[0])
		})
	},
}
