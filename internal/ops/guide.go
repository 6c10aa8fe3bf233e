package ops

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stargrove/telctl/internal/telcode"
)

// Guide cameras the pipeline can be armed with.
const (
	GuideCameraBlue = "blue"
	GuideCameraRed  = "red"
)

// GuideStart arms the pipeline guide camera and then tells the telescope
// to start guiding. The pipeline must be armed first: if arming fails the
// telescope daemon is never contacted. If the telescope declines for any
// reason other than already guiding, the arm is rolled back.
func (o *Ops) GuideStart(ctx context.Context, camera string, tileSize int, referenceFrame string) telcode.Code {
	if code := o.Pipeline.SetGuideCamera(ctx, camera, tileSize, referenceFrame); code != telcode.Succeeded {
		if code != telcode.PipelineDaemonError {
			o.Logger.Warn("Pipeline refused to arm guide camera",
				zap.String("camera", camera),
				zap.Int("status", int(code)))
		}
		return telcode.PipelineDaemonError
	}

	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}

	code := o.runInterruptible(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.StartGuiding(ctx)
	})

	if code != telcode.Succeeded && code != telcode.AlreadyGuiding {
		// Best-effort rollback; failing to disarm only warrants a warning.
		o.disarmGuideCamera(ctx)
	}

	return code
}

// GuideResume restarts guiding against an already-armed pipeline.
func (o *Ops) GuideResume(ctx context.Context) telcode.Code {
	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}
	return o.runInterruptible(ctx, func(ctx context.Context) telcode.Code {
		return o.Teld.StartGuiding(ctx)
	})
}

// GuideStop disarms the pipeline guide camera and stops guiding. Failing
// to notify the pipeline must not block stopping the telescope.
func (o *Ops) GuideStop(ctx context.Context) telcode.Code {
	o.disarmGuideCamera(ctx)

	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}
	return o.Teld.StopGuiding(ctx)
}

// GuidePause stops guiding while leaving the pipeline armed so
// GuideResume can pick it back up.
func (o *Ops) GuidePause(ctx context.Context) telcode.Code {
	if code := o.Teld.Ping(ctx); code != telcode.Succeeded {
		return code
	}
	return o.Teld.StopGuiding(ctx)
}

func (o *Ops) disarmGuideCamera(ctx context.Context) {
	if code := o.Pipeline.SetGuideCamera(ctx, "", 0, ""); code != telcode.Succeeded {
		fmt.Fprintln(o.Out, "warning: failed to disarm pipeline guide camera")
	}
}
