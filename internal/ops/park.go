package ops

import (
	"context"
	"fmt"
	"math"

	"github.com/stargrove/telctl/internal/telcode"
)

// ParkPosition is a fixed alt-az target the telescope can be parked at.
type ParkPosition struct {
	Name        string
	Altitude    float64 // radians
	Azimuth     float64 // radians
	Description string
}

// parkPositions is ordered so usage listings are stable.
var parkPositions = []ParkPosition{
	{
		Name:        "stow",
		Altitude:    0.616,
		Azimuth:     0.405,
		Description: "general purpose stow position",
	},
	{
		Name:        "zenith",
		Altitude:    math.Pi / 2,
		Azimuth:     0,
		Description: "telescope pointing directly upwards",
	},
}

// ParkPositions returns the fixed park position table.
func ParkPositions() []ParkPosition {
	return parkPositions
}

// Park slews the telescope to a named park position.
func (o *Ops) Park(ctx context.Context, name string) telcode.Code {
	var position *ParkPosition
	for i := range parkPositions {
		if parkPositions[i].Name == name {
			position = &parkPositions[i]
			break
		}
	}

	if position == nil {
		fmt.Fprintf(o.Out, "error: unknown park position %q\n", name)
		fmt.Fprintln(o.Out, "valid park positions are:")
		for _, p := range parkPositions {
			fmt.Fprintf(o.Out, "  %-8s %s\n", p.Name, p.Description)
		}
		return telcode.UsageError
	}

	if code := o.CheckDrivePower(ctx); code != telcode.Succeeded {
		return code
	}
	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}

	return o.runInterruptible(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.SlewAltAz(ctx, position.Altitude, position.Azimuth)
	})
}
