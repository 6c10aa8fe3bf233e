package ops

import (
	"context"

	"github.com/stargrove/telctl/internal/telcode"
)

// Slew moves the telescope to fixed equatorial coordinates in radians.
func (o *Ops) Slew(ctx context.Context, ra, dec float64) telcode.Code {
	return o.pointingCommand(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.SlewRaDec(ctx, ra, dec)
	})
}

// Track slews to the given coordinates and begins sidereal tracking.
func (o *Ops) Track(ctx context.Context, ra, dec float64) telcode.Code {
	return o.pointingCommand(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.TrackRaDec(ctx, ra, dec)
	})
}

// Offset applies a relative pointing offset in radians. The drive power
// check matches the other pointing commands even though an offset is a
// small adjustment rather than a slew.
func (o *Ops) Offset(ctx context.Context, dra, ddec float64) telcode.Code {
	return o.pointingCommand(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.OffsetRaDec(ctx, dra, ddec)
	})
}

// Focus moves the telescope focuser to an absolute position in
// micrometres.
func (o *Ops) Focus(ctx context.Context, position float64) telcode.Code {
	return o.runInterruptible(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.SetFocus(ctx, position)
	})
}

// CalHome runs the axis homing calibration.
func (o *Ops) CalHome(ctx context.Context) telcode.Code {
	return o.pointingCommand(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.FindHomes(ctx)
	})
}

// CalLimits runs the axis limit search calibration.
func (o *Ops) CalLimits(ctx context.Context) telcode.Code {
	return o.pointingCommand(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.FindLimits(ctx)
	})
}

// pointingCommand is the shared shape of every motion command: drive
// power must be enabled and the daemon alive before the primary call is
// issued.
func (o *Ops) pointingCommand(ctx context.Context, primary func(context.Context) telcode.Code) telcode.Code {
	if code := o.CheckDrivePower(ctx); code != telcode.Succeeded {
		return code
	}
	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}
	return o.runInterruptible(ctx, primary)
}
