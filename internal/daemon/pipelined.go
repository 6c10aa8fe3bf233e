package daemon

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stargrove/telctl/internal/telcode"
)

// Pipelined is the remote-object client for the data reduction pipeline
// daemon.
type Pipelined struct {
	c *client
}

// NewPipelined creates a pipeline daemon client for the given base URL.
func NewPipelined(baseURL string, pingTimeout time.Duration, logger *zap.Logger) *Pipelined {
	return &Pipelined{c: newClient("pipelined", baseURL, pingTimeout, logger)}
}

type guideCameraParams struct {
	Camera         *string `json:"camera"`
	TileSize       int     `json:"tile_size,omitempty"`
	ReferenceFrame *string `json:"reference_frame,omitempty"`
}

// SetGuideCamera arms the pipeline to compute autoguiding centroid
// offsets from the named camera feed. An empty camera name disarms
// guiding; an empty reference frame means none.
func (p *Pipelined) SetGuideCamera(ctx context.Context, camera string, tileSize int, referenceFrame string) telcode.Code {
	params := guideCameraParams{TileSize: tileSize}
	if camera != "" {
		params.Camera = &camera
	}
	if referenceFrame != "" {
		params.ReferenceFrame = &referenceFrame
	}

	code, err := p.c.call(ctx, "set_guide_camera", params, nil)
	if err != nil {
		return telcode.PipelineDaemonError
	}
	return telcode.Code(code)
}
