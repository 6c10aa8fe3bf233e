// Package telcode defines the status codes shared between the observatory
// daemons and this client, and the fixed code-to-message table used to
// render them.
package telcode

import (
	"fmt"
	"io"
)

// Code is a signed command status. Non-negative codes originate from the
// telescope, power, or pipeline daemons; negative codes are assigned by
// the client itself.
type Code int

// Daemon status codes.
const (
	Succeeded          Code = 0
	Failed             Code = 1
	Blocked            Code = 2
	InvalidControlIP   Code = 5
	NotInitialized     Code = 6
	AlreadyInitialized Code = 7
	NotHomed           Code = 8
	HomingFailed       Code = 9
	LimitSearchFailed  Code = 10
	CoverOpenFailed    Code = 11
	CoverCloseFailed   Code = 12
	FocusMoveFailed    Code = 13
	OutsideHALimits    Code = 14
	OutsideDecLimits   Code = 15
	OutsideAltLimits   Code = 16
	OutsideAzLimits    Code = 17
	SlewFailed         Code = 18
	TrackFailed        Code = 19
	OffsetFailed       Code = 20
	PointingFailed     Code = 21
	MountCommsFailed   Code = 22
	FocuserCommsFailed Code = 23
	CoverCommsFailed   Code = 24
	PowerCommsFailed   Code = 25
	HardwareInitFailed Code = 26
	GuideCameraFailed  Code = 27
	GuideStartFailed   Code = 28
	NotGuiding         Code = 29
	StopFailed         Code = 30
	AlreadyGuiding     Code = 31
)

// Client-side status codes. UsageError is never rendered through the
// message table; the command has already printed a complete explanation.
const (
	UsageError           Code = -1
	Interrupted          Code = -100
	TelescopeDaemonError Code = -101
	PowerDaemonError     Code = -102
	PipelineDaemonError  Code = -103
	DrivePowerDisabled   Code = -110
	CoverPowerDisabled   Code = -111
)

var messages = map[Code]string{
	Failed:             "error: command failed",
	Blocked:            "error: another command is already running",
	InvalidControlIP:   "error: command not accepted from this client",
	NotInitialized:     "error: telescope has not been initialized",
	AlreadyInitialized: "error: telescope has already been initialized",
	NotHomed:           "error: telescope axes have not been homed",
	HomingFailed:       "error: telescope failed to find its home positions",
	LimitSearchFailed:  "error: telescope failed to find its axis limits",
	CoverOpenFailed:    "error: mirror covers failed to open",
	CoverCloseFailed:   "error: mirror covers failed to close",
	FocusMoveFailed:    "error: telescope focuser failed to move",
	OutsideHALimits:    "error: requested coordinates outside hour angle limits",
	OutsideDecLimits:   "error: requested coordinates outside declination limits",
	OutsideAltLimits:   "error: requested coordinates outside altitude limits",
	OutsideAzLimits:    "error: requested coordinates outside azimuth limits",
	SlewFailed:         "error: telescope slew failed",
	TrackFailed:        "error: telescope failed to start tracking",
	OffsetFailed:       "error: telescope offset failed",
	PointingFailed:     "error: pointing model solution failed",
	MountCommsFailed:   "error: unable to communicate with telescope mount",
	FocuserCommsFailed: "error: unable to communicate with telescope focuser",
	CoverCommsFailed:   "error: unable to communicate with mirror covers",
	PowerCommsFailed:   "error: unable to communicate with power backplane",
	HardwareInitFailed: "error: failed to start low-level hardware daemons",
	GuideCameraFailed:  "error: guide camera reported a failure",
	GuideStartFailed:   "error: autoguiding failed to start",
	NotGuiding:         "error: telescope is not currently guiding",
	StopFailed:         "error: telescope failed to stop",
	AlreadyGuiding:     "error: telescope is already guiding",

	Interrupted:          "error: command interrupted",
	TelescopeDaemonError: "error: unable to communicate with telescope daemon",
	PowerDaemonError:     "error: unable to communicate with power daemon",
	PipelineDaemonError:  "error: unable to communicate with pipeline daemon",
	DrivePowerDisabled:   "error: telescope drive power is disabled",
	CoverPowerDisabled:   "error: telescope cover power is disabled",
}

// Message returns the fixed message for a known code.
func Message(c Code) (string, bool) {
	msg, ok := messages[c]
	return msg, ok
}

// Report prints the message for a status code. Succeeded is silent, as is
// UsageError: by convention a -1 means the failing command already printed
// its own message, and printing again would double-report. Codes missing
// from the table print a generic fallback so an incomplete table can never
// hide a real failure.
func Report(w io.Writer, c Code) {
	if c == Succeeded || c == UsageError {
		return
	}
	if msg, ok := messages[c]; ok {
		fmt.Fprintln(w, msg)
		return
	}
	fmt.Fprintf(w, "error: unknown status code %d\n", int(c))
}

// Exit maps a status code onto a process exit status. Negative codes land
// the way a POSIX exit of a negative value does: truncated to the low
// byte, so -1 becomes 255 and -100 becomes 156.
func Exit(c Code) int {
	return int(uint8(c))
}
