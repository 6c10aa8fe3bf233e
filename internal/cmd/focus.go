package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var focusCmd = &cobra.Command{
	Use:     "focus telescope <um>",
	Short:   "Move the telescope focuser to an absolute position",
	GroupID: "observing",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			badUsage("error: expected tel focus telescope <um>")
			return
		}

		switch args[0] {
		case "telescope":
			if len(args) != 2 {
				badUsage("error: expected tel focus telescope <um>")
				return
			}
			position, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				badUsage("error: failed to parse %q as a focus position in um", args[1])
				return
			}
			run(func(o *ops.Ops) telcode.Code {
				return o.Focus(context.Background(), position)
			})
		case "instrument":
			badUsage("error: instrument focus control is not implemented")
		default:
			badUsage("error: unknown focuser %q", args[0])
		}
	},
}
