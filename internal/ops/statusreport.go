package ops

import (
	"context"
	"fmt"
	"io"

	"github.com/stargrove/telctl/internal/angle"
	"github.com/stargrove/telctl/internal/daemon"
	"github.com/stargrove/telctl/internal/telcode"
)

// ansi wraps text with an SGR escape code.
func ansi(code int, text string) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", code, text)
}

// stateColors maps telescope states onto SGR color codes for the state
// label in the status report.
var stateColors = map[int]int{
	daemon.StateDisabled:     31, // red
	daemon.StateInitializing: 33, // yellow
	daemon.StateSlewing:      33, // yellow
	daemon.StateStopped:      1,  // bold
	daemon.StateTracking:     32, // green
	daemon.StateGuiding:      32, // green
}

func colorStateLabel(status *daemon.TelescopeStatus) string {
	if code, ok := stateColors[status.State]; ok {
		return ansi(code, status.StateLabel)
	}
	return status.StateLabel
}

// Status fetches a fresh snapshot from teld plus the drive power state
// and renders a human-readable report. Rendering never fails the command:
// the power state degrades to UNKNOWN if powerd cannot be reached, and the
// command returns success once the snapshot is in hand.
func (o *Ops) Status(ctx context.Context) telcode.Code {
	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}

	snapshot, code := o.Teld.ReportStatus(ctx)
	if code != telcode.Succeeded {
		return code
	}

	var drivePower *bool
	if enabled, err := o.Powerd.Value(ctx, o.Config.DrivePowerSwitch); err == nil {
		drivePower = &enabled
	}

	RenderStatus(o.Out, snapshot, drivePower)
	return telcode.Succeeded
}

// RenderStatus writes the multi-line status report. A nil drivePower
// renders as UNKNOWN, covering both an unreachable powerd and callers
// that have no power state to show, such as the live feed.
func RenderStatus(w io.Writer, status *daemon.TelescopeStatus, drivePower *bool) {
	fmt.Fprintf(w, "Telescope is %s\n", colorStateLabel(status))

	if status.State == daemon.StateDisabled {
		fmt.Fprintf(w, "Drive power %s\n", drivePowerLabel(drivePower))
		return
	}

	if status.PointingState != "" {
		fmt.Fprintf(w, "   Pointing %s\n", status.PointingState)
	}
	fmt.Fprintf(w, "         RA %s\n", angle.RAFromRadians(status.RA))
	fmt.Fprintf(w, "        Dec %s\n", angle.DecFromRadians(status.Dec))
	fmt.Fprintf(w, "        Alt %s\n", angle.DecFromRadians(status.Altitude))
	fmt.Fprintf(w, "         Az %s\n", angle.DecFromRadians(status.Azimuth))
	fmt.Fprintf(w, "        LST %s\n", angle.RAFromRadians(status.LST))

	if status.OffsetRA != 0 {
		fmt.Fprintf(w, "  RA offset %s\n", angle.RAFromRadians(status.OffsetRA))
	}
	if status.OffsetDec != 0 {
		fmt.Fprintf(w, " Dec offset %s\n", angle.DecFromRadians(status.OffsetDec))
	}

	fmt.Fprintf(w, "      Focus %.1f um\n", status.TelescopeFocusUM)
	fmt.Fprintf(w, "Drive power %s\n", drivePowerLabel(drivePower))
}

func drivePowerLabel(drivePower *bool) string {
	switch {
	case drivePower == nil:
		return "UNKNOWN"
	case *drivePower:
		return ansi(32, "ENABLED")
	default:
		return ansi(31, "DISABLED")
	}
}
