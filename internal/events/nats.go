package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// NatsSinkConfig configures NatsSink's connection.
type NatsSinkConfig struct {
	URL           string
	ReconnectWait time.Duration
	MaxReconnects int
}

// DefaultNatsSinkConfig returns sane defaults, matching the reconnect
// policy the rest of Asgard's NATS publishers use.
func DefaultNatsSinkConfig() NatsSinkConfig {
	return NatsSinkConfig{
		URL:           nats.DefaultURL,
		ReconnectWait: 2 * time.Second,
		MaxReconnects: 60,
	}
}

// NatsSink publishes every emitted event as JSON on
// "heimdall.events.<storageID>", so other Asgard services can subscribe to
// mission-check outcomes without coupling to Heimdall's process.
type NatsSink struct {
	nc        *nats.Conn
	storageID string
	logger    *logrus.Logger
}

// NewNatsSink connects to NATS and returns a Sink bound to one storage ID.
func NewNatsSink(cfg NatsSinkConfig, storageID string, logger *logrus.Logger) (*NatsSink, error) {
	if logger == nil {
		logger = logrus.New()
	}

	opts := []nats.Option{
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("heimdall: reconnected to NATS")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.WithError(err).Warn("heimdall: disconnected from NATS")
			}
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("heimdall: nats connect: %w", err)
	}

	return &NatsSink{nc: nc, storageID: storageID, logger: logger}, nil
}

func (s *NatsSink) subject() string {
	return "heimdall.events." + s.storageID
}

// Emit publishes e. Publish errors are logged, not returned: a check never
// blocks or fails because a collaborator is unreachable.
func (s *NatsSink) Emit(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		s.logger.WithError(err).Error("heimdall: failed to marshal event")
		return
	}
	if err := s.nc.Publish(s.subject(), data); err != nil {
		s.logger.WithError(err).Error("heimdall: failed to publish event")
	}
}

// Close drains and closes the underlying NATS connection.
func (s *NatsSink) Close() {
	s.nc.Close()
}
