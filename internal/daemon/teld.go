package daemon

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stargrove/telctl/internal/telcode"
)

// Telescope state values reported in a status snapshot.
const (
	StateDisabled     = 0
	StateInitializing = 1
	StateSlewing      = 2
	StateStopped      = 3
	StateTracking     = 4
	StateGuiding      = 5
)

// TelescopeStatus is a snapshot returned by teld's report_status method.
// It is fetched fresh on every invocation and never cached.
type TelescopeStatus struct {
	State            int     `json:"state"`
	StateLabel       string  `json:"state_label"`
	PointingState    string  `json:"pointing_state"`
	RA               float64 `json:"ra"`         // radians
	Dec              float64 `json:"dec"`        // radians
	Altitude         float64 `json:"alt"`        // radians
	Azimuth          float64 `json:"az"`         // radians
	LST              float64 `json:"lst"`        // radians
	OffsetRA         float64 `json:"offset_ra"`  // radians
	OffsetDec        float64 `json:"offset_dec"` // radians
	TelescopeFocusUM float64 `json:"telescope_focus_um"`
}

// Teld is the remote-object client for the telescope control daemon.
type Teld struct {
	c *client
}

// NewTeld creates a telescope daemon client for the given base URL.
func NewTeld(baseURL string, pingTimeout time.Duration, logger *zap.Logger) *Teld {
	return &Teld{c: newClient("teld", baseURL, pingTimeout, logger)}
}

// Ping verifies the daemon is alive before a command is issued. The probe
// is the only time-bounded call against teld.
func (t *Teld) Ping(ctx context.Context) telcode.Code {
	if err := t.c.ping(ctx); err != nil {
		t.c.logger.Warn("Telescope daemon unreachable", zap.Error(err))
		return telcode.TelescopeDaemonError
	}
	return telcode.Succeeded
}

// ReportStatus fetches a fresh status snapshot.
func (t *Teld) ReportStatus(ctx context.Context) (*TelescopeStatus, telcode.Code) {
	status := &TelescopeStatus{}
	code, err := t.c.call(ctx, "report_status", nil, status)
	if err != nil {
		return nil, telcode.TelescopeDaemonError
	}
	if code != 0 {
		return nil, telcode.Code(code)
	}
	return status, telcode.Succeeded
}

type altAzParams struct {
	Alt float64 `json:"alt"`
	Az  float64 `json:"az"`
}

type raDecParams struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

// SlewAltAz slews to a fixed altitude and azimuth, both in radians.
func (t *Teld) SlewAltAz(ctx context.Context, alt, az float64) telcode.Code {
	return t.simple(ctx, "slew_altaz", altAzParams{Alt: alt, Az: az})
}

// SlewRaDec slews to the given equatorial coordinates in radians.
func (t *Teld) SlewRaDec(ctx context.Context, ra, dec float64) telcode.Code {
	return t.simple(ctx, "slew_radec", raDecParams{RA: ra, Dec: dec})
}

// TrackRaDec slews to the given coordinates and begins sidereal tracking.
func (t *Teld) TrackRaDec(ctx context.Context, ra, dec float64) telcode.Code {
	return t.simple(ctx, "track_radec", raDecParams{RA: ra, Dec: dec})
}

// OffsetRaDec applies a relative pointing offset in radians.
func (t *Teld) OffsetRaDec(ctx context.Context, dra, ddec float64) telcode.Code {
	return t.simple(ctx, "offset_radec", raDecParams{RA: dra, Dec: ddec})
}

// SetFocus moves the telescope focuser to an absolute position in
// micrometres.
func (t *Teld) SetFocus(ctx context.Context, position float64) telcode.Code {
	return t.simple(ctx, "set_focus", struct {
		Position float64 `json:"position"`
	}{Position: position})
}

// OpenCovers opens the mirror covers.
func (t *Teld) OpenCovers(ctx context.Context) telcode.Code {
	return t.simple(ctx, "open_covers", nil)
}

// CloseCovers closes the mirror covers.
func (t *Teld) CloseCovers(ctx context.Context) telcode.Code {
	return t.simple(ctx, "close_covers", nil)
}

// FindHomes runs the axis homing calibration.
func (t *Teld) FindHomes(ctx context.Context) telcode.Code {
	return t.simple(ctx, "find_homes", nil)
}

// FindLimits runs the axis limit search calibration.
func (t *Teld) FindLimits(ctx context.Context) telcode.Code {
	return t.simple(ctx, "find_limits", nil)
}

// StartGuiding starts closed-loop autoguiding.
func (t *Teld) StartGuiding(ctx context.Context) telcode.Code {
	return t.simple(ctx, "start_guiding", nil)
}

// StopGuiding stops closed-loop autoguiding.
func (t *Teld) StopGuiding(ctx context.Context) telcode.Code {
	return t.simple(ctx, "stop_guiding", nil)
}

// Stop halts all telescope motion.
func (t *Teld) Stop(ctx context.Context) telcode.Code {
	return t.simple(ctx, "stop", nil)
}

// Initialize powers on the telescope subsystems and starts the low-level
// hardware daemons.
func (t *Teld) Initialize(ctx context.Context) telcode.Code {
	return t.simple(ctx, "initialize", nil)
}

// Shutdown powers down the telescope subsystems.
func (t *Teld) Shutdown(ctx context.Context) telcode.Code {
	return t.simple(ctx, "shutdown", nil)
}

func (t *Teld) simple(ctx context.Context, method string, params any) telcode.Code {
	code, err := t.c.call(ctx, method, params, nil)
	if err != nil {
		return telcode.TelescopeDaemonError
	}
	return telcode.Code(code)
}
