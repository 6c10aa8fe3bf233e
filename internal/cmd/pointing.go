package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/angle"
	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var slewCmd = &cobra.Command{
	Use:     "slew <HH:MM:SS.S> <DD:MM:SS.S>",
	Short:   "Slew to fixed equatorial coordinates",
	GroupID: "observing",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ra, dec, ok := parsePointingArgs("slew", args)
		if !ok {
			return
		}
		run(func(o *ops.Ops) telcode.Code {
			return o.Slew(context.Background(), ra, dec)
		})
	},
}

var trackCmd = &cobra.Command{
	Use:     "track <HH:MM:SS.S> <DD:MM:SS.S>",
	Short:   "Slew to equatorial coordinates and begin tracking",
	GroupID: "observing",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ra, dec, ok := parsePointingArgs("track", args)
		if !ok {
			return
		}
		run(func(o *ops.Ops) telcode.Code {
			return o.Track(context.Background(), ra, dec)
		})
	},
}

var offsetCmd = &cobra.Command{
	Use:     "offset <HH:MM:SS.S> <DD:MM:SS.S>",
	Short:   "Apply a relative pointing offset",
	GroupID: "observing",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dra, ddec, ok := parsePointingArgs("offset", args)
		if !ok {
			return
		}
		run(func(o *ops.Ops) telcode.Code {
			return o.Offset(context.Background(), dra, ddec)
		})
	},
}

// parsePointingArgs parses a sexagesimal RA/Dec pair into radians. On any
// failure it reports the usage error and returns ok false.
func parsePointingArgs(command string, args []string) (ra, dec float64, ok bool) {
	if len(args) != 2 {
		badUsage("error: expected tel %s <HH:MM:SS.S> <DD:MM:SS.S>", command)
		return 0, 0, false
	}

	ra, err := angle.RAToRadians(args[0])
	if err != nil {
		badUsage("error: failed to parse %q as a right ascension (HH:MM:SS.S)", args[0])
		return 0, 0, false
	}

	dec, err = angle.DecToRadians(args[1])
	if err != nil {
		badUsage("error: failed to parse %q as a declination (DD:MM:SS.S)", args[1])
		return 0, 0, false
	}

	return ra, dec, true
}
