// Package feed follows the telescope status stream the control daemon
// publishes to the MQTT broker and renders each snapshot as it arrives.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stargrove/telctl/internal/config"
	"github.com/stargrove/telctl/internal/daemon"
	"github.com/stargrove/telctl/internal/ops"
)

const connectTimeout = 10 * time.Second

// Watcher subscribes to the telescope status topic and renders every
// published snapshot until its context is cancelled.
type Watcher struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer

	// newClient is swapped out in tests.
	newClient func(*mqtt.ClientOptions) mqtt.Client
}

// New creates a status watcher for the configured broker and topic.
func New(cfg *config.Config, logger *zap.Logger, out io.Writer) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		cfg:       cfg,
		logger:    logger,
		out:       out,
		newClient: mqtt.NewClient,
	}
}

// Run connects, subscribes, and blocks until ctx is cancelled. Broker
// outages after the initial connect are ridden out by the reconnect loop.
func (w *Watcher) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(w.cfg.BrokerURL)
	opts.SetClientID("telctl-watch-" + uuid.NewString()[:8])
	opts.SetConnectTimeout(connectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		w.logger.Warn("Broker connection lost", zap.Error(err))
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		w.logger.Info("Connected to broker", zap.String("broker", w.cfg.BrokerURL))
		token := client.Subscribe(w.cfg.StatusTopic, 0, w.handle)
		token.Wait()
		if err := token.Error(); err != nil {
			w.logger.Error("Subscribe failed",
				zap.String("topic", w.cfg.StatusTopic),
				zap.Error(err))
		}
	})

	client := w.newClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("broker connection timeout after %v", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", w.cfg.BrokerURL, err)
	}

	fmt.Fprintf(w.out, "watching %s on %s\n", w.cfg.StatusTopic, w.cfg.BrokerURL)

	<-ctx.Done()
	client.Disconnect(250)
	return nil
}

func (w *Watcher) handle(_ mqtt.Client, msg mqtt.Message) {
	var status daemon.TelescopeStatus
	if err := json.Unmarshal(msg.Payload(), &status); err != nil {
		w.logger.Warn("Discarding malformed status message",
			zap.String("topic", msg.Topic()),
			zap.Error(err))
		return
	}

	fmt.Fprintln(w.out)
	ops.RenderStatus(w.out, &status, nil)
}
