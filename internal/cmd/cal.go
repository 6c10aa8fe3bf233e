package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var calCmd = &cobra.Command{
	Use:     "cal (home|limits)",
	Short:   "Run a telescope axis calibration",
	GroupID: "engineering",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			badUsage("error: expected tel cal (home|limits)")
			return
		}

		switch args[0] {
		case "home":
			run(func(o *ops.Ops) telcode.Code {
				return o.CalHome(context.Background())
			})
		case "limits":
			run(func(o *ops.Ops) telcode.Code {
				return o.CalLimits(context.Background())
			})
		default:
			badUsage("error: unknown calibration %q", args[0])
		}
	},
}
