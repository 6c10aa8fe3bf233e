package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Report the current telescope state",
	GroupID: "general",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			badUsage("error: status takes no arguments")
			return
		}
		run(func(o *ops.Ops) telcode.Code {
			return o.Status(context.Background())
		})
	},
}
