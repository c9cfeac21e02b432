package broker

import (
	"errors"
	"fmt"
	"time"

	"notion-blocks/blockmirror/config"
	"notion-blocks/blockmirror/utils/logger"

	"github.com/nats-io/nats.go"
)

var ErrProducerClosed = errors.New("producer is not connected")

// Publisher sends raw event payloads to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type NatsProducer struct {
	conn *nats.Conn
}

func connect(cfg config.Config, name string) (*nats.Conn, error) {
	return nats.Connect(cfg.NatsURL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Log.Warn().Err(err).Str("client", name).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Log.Info().Str("client", name).Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
}

func InitProducer(cfg config.Config) (*NatsProducer, error) {
	conn, err := connect(cfg, "blockmirror-producer")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NatsURL, err)
	}
	logger.Log.Info().Str("url", cfg.NatsURL).Msg("NATS producer initialized")
	return &NatsProducer{conn: conn}, nil
}

func (p *NatsProducer) Publish(subject string, data []byte) error {
	if p == nil || p.conn == nil || p.conn.IsClosed() {
		return ErrProducerClosed
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	logger.Log.Debug().Str("subject", subject).Int("bytes", len(data)).Msg("Published message")
	return nil
}

func (p *NatsProducer) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to drain NATS producer")
		p.conn.Close()
	}
}
