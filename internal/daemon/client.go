// Package daemon provides remote-object clients for the observatory
// daemons. Each remote method is a JSON POST returning a status envelope;
// transport failures are uniform per daemon regardless of the method
// being invoked.
package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnreachable classifies any transport-level failure talking to a
// daemon: connection refused, timeout, or a malformed response.
var ErrUnreachable = errors.New("daemon unreachable")

// client is the shared remote-call machinery under the typed daemon
// wrappers. Commands are issued without a timeout since telescope motions
// can outlast any reasonable bound; only the liveness probe is bounded.
type client struct {
	name        string
	baseURL     string
	command     *http.Client
	probe       *http.Client
	logger      *zap.Logger
	clientID    string
	transaction atomic.Int32
}

func newClient(name, baseURL string, probeTimeout time.Duration, logger *zap.Logger) *client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &client{
		name:     name,
		baseURL:  baseURL,
		command:  &http.Client{},
		probe:    &http.Client{Timeout: probeTimeout},
		logger:   logger.With(zap.String("daemon", name)),
		clientID: uuid.NewString(),
	}
}

// request is the envelope wrapping every remote method invocation.
type request struct {
	ClientID      string `json:"client_id"`
	TransactionID int32  `json:"transaction_id"`
	Params        any    `json:"params,omitempty"`
}

// response is the envelope every daemon method returns. Status carries the
// daemon's own command status; Value holds any method-specific payload.
type response struct {
	Status       int             `json:"status"`
	Value        json.RawMessage `json:"value,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// call invokes a remote method with the un-timed command client and
// decodes the optional value payload into value when non-nil.
func (c *client) call(ctx context.Context, method string, params, value any) (int, error) {
	return c.do(ctx, c.command, method, params, value)
}

// ping verifies daemon liveness with the short-timeout probe client.
func (c *client) ping(ctx context.Context) error {
	_, err := c.do(ctx, c.probe, "ping", nil, nil)
	return err
}

func (c *client) do(ctx context.Context, hc *http.Client, method string, params, value any) (int, error) {
	body, err := json.Marshal(request{
		ClientID:      c.clientID,
		TransactionID: c.transaction.Add(1),
		Params:        params,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug("Remote call failed", zap.String("method", method), zap.Error(err))
		return 0, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, c.name, method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, c.name, method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %s %s: HTTP %d", ErrUnreachable, c.name, method, resp.StatusCode)
	}

	var envelope response
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, c.name, method, err)
	}

	if envelope.ErrorMessage != "" {
		c.logger.Debug("Daemon reported error",
			zap.String("method", method),
			zap.Int("status", envelope.Status),
			zap.String("message", envelope.ErrorMessage))
	}

	if value != nil && len(envelope.Value) > 0 {
		if err := json.Unmarshal(envelope.Value, value); err != nil {
			return 0, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, c.name, method, err)
		}
	}

	return envelope.Status, nil
}
