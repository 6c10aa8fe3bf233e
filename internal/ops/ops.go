// Package ops composes the daemon remote calls behind each user-facing
// command: argument-independent sequencing, precondition checks, and
// status-code plumbing. Every operation is a single synchronous pass;
// nothing here outlives one process invocation.
package ops

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/stargrove/telctl/internal/config"
	"github.com/stargrove/telctl/internal/daemon"
	"github.com/stargrove/telctl/internal/telcode"
)

// TelescopeDaemon is the remote surface of teld this client depends on.
type TelescopeDaemon interface {
	Ping(ctx context.Context) telcode.Code
	ReportStatus(ctx context.Context) (*daemon.TelescopeStatus, telcode.Code)
	OpenCovers(ctx context.Context) telcode.Code
	CloseCovers(ctx context.Context) telcode.Code
	SlewAltAz(ctx context.Context, alt, az float64) telcode.Code
	SlewRaDec(ctx context.Context, ra, dec float64) telcode.Code
	TrackRaDec(ctx context.Context, ra, dec float64) telcode.Code
	OffsetRaDec(ctx context.Context, dra, ddec float64) telcode.Code
	SetFocus(ctx context.Context, position float64) telcode.Code
	FindHomes(ctx context.Context) telcode.Code
	FindLimits(ctx context.Context) telcode.Code
	StartGuiding(ctx context.Context) telcode.Code
	StopGuiding(ctx context.Context) telcode.Code
	Stop(ctx context.Context) telcode.Code
	Initialize(ctx context.Context) telcode.Code
	Shutdown(ctx context.Context) telcode.Code
}

// PowerDaemon is the remote surface of powerd this client depends on.
type PowerDaemon interface {
	Switch(ctx context.Context, name string, enable bool) (bool, error)
	Value(ctx context.Context, name string) (bool, error)
}

// PipelineDaemon is the remote surface of pipelined this client depends on.
type PipelineDaemon interface {
	SetGuideCamera(ctx context.Context, camera string, tileSize int, referenceFrame string) telcode.Code
}

// Ops holds the daemon clients and environment a command handler needs.
type Ops struct {
	Teld     TelescopeDaemon
	Powerd   PowerDaemon
	Pipeline PipelineDaemon
	Config   *config.Config
	Logger   *zap.Logger
	Out      io.Writer

	// interrupts overrides the SIGINT source in tests.
	interrupts <-chan os.Signal
}

// New builds the operations environment against the configured daemons.
func New(cfg *config.Config, logger *zap.Logger) *Ops {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ops{
		Teld:     daemon.NewTeld(cfg.TeldURL, cfg.PingTimeout, logger),
		Powerd:   daemon.NewPowerd(cfg.PowerdURL, cfg.PingTimeout, logger),
		Pipeline: daemon.NewPipelined(cfg.PipelinedURL, cfg.PingTimeout, logger),
		Config:   cfg,
		Logger:   logger,
		Out:      os.Stdout,
	}
}

// CheckDrivePower queries the drive power switch before any command that
// would move the telescope.
func (o *Ops) CheckDrivePower(ctx context.Context) telcode.Code {
	enabled, err := o.Powerd.Value(ctx, o.Config.DrivePowerSwitch)
	if err != nil {
		o.Logger.Warn("Power daemon unreachable", zap.Error(err))
		return telcode.PowerDaemonError
	}
	if !enabled {
		return telcode.DrivePowerDisabled
	}
	return telcode.Succeeded
}

// CheckCoverPower queries the mirror cover power switch. The cover
// open/close command is currently disabled in the dispatch table, so
// nothing calls this today; it is kept alongside CheckDrivePower for when
// the covers return.
func (o *Ops) CheckCoverPower(ctx context.Context) telcode.Code {
	enabled, err := o.Powerd.Value(ctx, o.Config.CoverPowerSwitch)
	if err != nil {
		o.Logger.Warn("Power daemon unreachable", zap.Error(err))
		return telcode.PowerDaemonError
	}
	if !enabled {
		return telcode.CoverPowerDisabled
	}
	return telcode.Succeeded
}

// Drive toggles the telescope drive power switch.
func (o *Ops) Drive(ctx context.Context, enable bool) telcode.Code {
	ok, err := o.Powerd.Switch(ctx, o.Config.DrivePowerSwitch, enable)
	if err != nil {
		o.Logger.Warn("Power daemon unreachable", zap.Error(err))
		return telcode.PowerDaemonError
	}
	if !ok {
		return telcode.Failed
	}
	return telcode.Succeeded
}

// runInterruptible issues the primary blocking daemon call while watching
// for a user interrupt. On interrupt the stop sequence runs as best-effort
// cleanup; a clean stop is remapped to Interrupted so the process still
// reports the interruption rather than success.
func (o *Ops) runInterruptible(ctx context.Context, primary func(context.Context) telcode.Code) telcode.Code {
	interrupts := o.interrupts
	if interrupts == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		defer signal.Stop(ch)
		interrupts = ch
	}

	done := make(chan telcode.Code, 1)
	go func() { done <- primary(ctx) }()

	select {
	case code := <-done:
		return code
	case <-interrupts:
		fmt.Fprintln(o.Out, "interrupted: stopping telescope")
		code := o.Stop(context.Background())
		if code == telcode.Succeeded {
			code = telcode.Interrupted
		}
		return code
	}
}
