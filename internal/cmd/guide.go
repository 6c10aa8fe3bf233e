package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var guideCmd = &cobra.Command{
	Use:     "guide (blue|red) <tile-size> [reference-frame] | stop | pause | resume",
	Short:   "Control closed-loop autoguiding",
	GroupID: "observing",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			badUsage("error: expected tel guide (blue|red) <tile-size> [reference-frame] | stop | pause | resume")
			return
		}

		switch args[0] {
		case ops.GuideCameraBlue, ops.GuideCameraRed:
			camera := args[0]
			if len(args) < 2 || len(args) > 3 {
				badUsage("error: expected tel guide %s <tile-size> [reference-frame]", camera)
				return
			}
			tileSize, err := strconv.Atoi(args[1])
			if err != nil || tileSize <= 0 {
				badUsage("error: failed to parse %q as a guide tile size", args[1])
				return
			}
			referenceFrame := ""
			if len(args) == 3 {
				referenceFrame = args[2]
			}
			run(func(o *ops.Ops) telcode.Code {
				return o.GuideStart(context.Background(), camera, tileSize, referenceFrame)
			})
		case "stop":
			run(func(o *ops.Ops) telcode.Code {
				return o.GuideStop(context.Background())
			})
		case "pause":
			run(func(o *ops.Ops) telcode.Code {
				return o.GuidePause(context.Background())
			})
		case "resume":
			run(func(o *ops.Ops) telcode.Code {
				return o.GuideResume(context.Background())
			})
		default:
			badUsage("error: unknown guide command %q", args[0])
		}
	},
}
