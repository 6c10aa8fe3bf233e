package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/stargrove/telctl/internal/config"
	"github.com/stargrove/telctl/internal/feed"
	"github.com/stargrove/telctl/internal/telcode"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Follow live telescope status from the broker",
	GroupID: "general",
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			badUsage("error: watch takes no arguments")
			return
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			exitCode = telcode.UsageError
			return
		}

		logger, err := buildLogger(cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			exitCode = telcode.UsageError
			return
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		watcher := feed.New(cfg, logger, out)
		if err := watcher.Run(ctx); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			exitCode = telcode.Failed
			return
		}
		exitCode = telcode.Succeeded
	},
}
