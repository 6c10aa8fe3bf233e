package ops

import (
	"context"
	"time"

	"github.com/stargrove/telctl/internal/telcode"
)

// Stop halts all telescope motion. The pipeline guide camera is disarmed
// first on a warn-only basis.
func (o *Ops) Stop(ctx context.Context) telcode.Code {
	o.disarmGuideCamera(ctx)

	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}
	return o.Teld.Stop(ctx)
}

// Init powers on the telescope subsystems and starts the low-level
// hardware daemons.
func (o *Ops) Init(ctx context.Context) telcode.Code {
	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}
	return o.runInterruptible(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.Initialize(ctx)
	})
}

// Kill powers down the telescope subsystems.
func (o *Ops) Kill(ctx context.Context) telcode.Code {
	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}
	return o.Teld.Shutdown(ctx)
}

// Reboot shuts the telescope down, waits for the hardware to settle, and
// initializes it again. The shutdown status is deliberately discarded;
// the initialize result decides the outcome.
func (o *Ops) Reboot(ctx context.Context) telcode.Code {
	_ = o.Kill(ctx)
	time.Sleep(o.Config.RebootDelay)
	return o.Init(ctx)
}
