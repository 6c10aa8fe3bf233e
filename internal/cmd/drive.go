package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var driveCmd = &cobra.Command{
	Use:     "drive (enable|disable)",
	Short:   "Switch the telescope drive power",
	GroupID: "engineering",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 || (args[0] != "enable" && args[0] != "disable") {
			badUsage("error: expected tel drive (enable|disable)")
			return
		}
		enable := args[0] == "enable"
		run(func(o *ops.Ops) telcode.Code {
			return o.Drive(context.Background(), enable)
		})
	},
}
