// Package cmd implements the tel command-line surface: argument parsing,
// dispatch to the operations layer, and status-code reporting.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stargrove/telctl/internal/config"
	"github.com/stargrove/telctl/internal/ops"
	"github.com/stargrove/telctl/internal/telcode"
)

var (
	configFile string

	// out receives all user-facing command output. Tests redirect it.
	out io.Writer = os.Stdout

	// newOps builds the operations environment. Tests replace it to
	// inject fake daemons.
	newOps = func(cfg *config.Config, logger *zap.Logger) *ops.Ops {
		o := ops.New(cfg, logger)
		o.Out = out
		return o
	}

	// exitCode carries the status of the last executed command out of
	// cobra's dispatch.
	exitCode = telcode.Succeeded
)

var rootCmd = &cobra.Command{
	Use:   "tel",
	Short: "Remote control client for the telescope daemons",
	Long: `tel issues commands to the telescope control daemon (teld) and its
supporting power and pipeline daemons. Run it with no arguments for the
full command list.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Unrecognized subcommands land here because ArbitraryArgs is set;
	// both the bare invocation and a typo print the help and succeed.
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	exitCode = telcode.Succeeded
	rootCmd.SetOut(out)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return telcode.Exit(telcode.UsageError)
	}
	return telcode.Exit(exitCode)
}

// run loads the configuration, builds the daemon clients, executes op, and
// reports its status code.
func run(op func(o *ops.Ops) telcode.Code) {
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

	code := op(newOps(cfg, logger))
	telcode.Report(out, code)
	exitCode = code
}

// badUsage reports an argument error and records the usage status code.
func badUsage(format string, args ...any) {
	fmt.Fprintf(out, format+"\n", args...)
	exitCode = telcode.UsageError
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to the configuration file")

	rootCmd.AddGroup(
		&cobra.Group{ID: "general", Title: "General commands:"},
		&cobra.Group{ID: "observing", Title: "Observing commands:"},
		&cobra.Group{ID: "engineering", Title: "Engineering commands:"},
	)

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(driveCmd)
	rootCmd.AddCommand(parkCmd)
	rootCmd.AddCommand(slewCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(offsetCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(calCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(rebootCmd)
}
