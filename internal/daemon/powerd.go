package daemon

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Powerd is the remote-object client for the power distribution daemon.
// Its methods return errors rather than status codes: the caller decides
// how a power failure maps onto the command being run.
type Powerd struct {
	c *client
}

// NewPowerd creates a power daemon client for the given base URL.
func NewPowerd(baseURL string, pingTimeout time.Duration, logger *zap.Logger) *Powerd {
	return &Powerd{c: newClient("powerd", baseURL, pingTimeout, logger)}
}

type switchParams struct {
	Name   string `json:"name"`
	Enable bool   `json:"enable"`
}

// Switch toggles a named PDU output. The returned bool reports whether
// the switch accepted the request.
func (p *Powerd) Switch(ctx context.Context, name string, enable bool) (bool, error) {
	var ok bool
	if _, err := p.c.call(ctx, "switch", switchParams{Name: name, Enable: enable}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Value queries the current state of a named PDU output.
func (p *Powerd) Value(ctx context.Context, name string) (bool, error) {
	var enabled bool
	params := struct {
		Name string `json:"name"`
	}{Name: name}
	if _, err := p.c.call(ctx, "value", params, &enabled); err != nil {
		return false, err
	}
	return enabled, nil
}
