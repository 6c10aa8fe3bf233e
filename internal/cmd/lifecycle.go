package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

// noArgCommand builds a subcommand that takes no arguments and maps
// straight onto one operation.
func noArgCommand(use, short, group string, op func(o *ops.Ops) telcode.Code) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		GroupID: group,
		Args:    cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				badUsage("error: %s takes no arguments", use)
				return
			}
			run(op)
		},
	}
}

var stopCmd = noArgCommand("stop", "Stop all telescope motion", "general",
	func(o *ops.Ops) telcode.Code { return o.Stop(context.Background()) })

var initCmd = noArgCommand("init", "Initialize the telescope subsystems", "engineering",
	func(o *ops.Ops) telcode.Code { return o.Init(context.Background()) })

var killCmd = noArgCommand("kill", "Shut down the telescope subsystems", "engineering",
	func(o *ops.Ops) telcode.Code { return o.Kill(context.Background()) })

var rebootCmd = noArgCommand("reboot", "Shut down and reinitialize the telescope", "engineering",
	func(o *ops.Ops) telcode.Code { return o.Reboot(context.Background()) })
