package broker

import (
	"fmt"

	"notion-blocks/blockmirror/config"
	"notion-blocks/blockmirror/utils/logger"

	"github.com/nats-io/nats.go"
)

const messageBufferSize = 256

// Consumer delivers the messages of a set of subjects on one channel.
type Consumer struct {
	conn          *nats.Conn
	subscriptions []*nats.Subscription
	messages      chan *nats.Msg
}

// InitConsumer subscribes to subjects. With a non empty queue the
// subscriptions join that queue group, so each message reaches one member.
func InitConsumer(cfg config.Config, subjects []string, queue string) (*Consumer, error) {
	conn, err := connect(cfg, "blockmirror-consumer")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NatsURL, err)
	}

	consumer := &Consumer{
		conn:     conn,
		messages: make(chan *nats.Msg, messageBufferSize),
	}
	for _, subject := range subjects {
		var sub *nats.Subscription
		if queue == "" {
			sub, err = conn.ChanSubscribe(subject, consumer.messages)
		} else {
			sub, err = conn.ChanQueueSubscribe(subject, queue, consumer.messages)
		}
		if err != nil {
			consumer.Close()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		consumer.subscriptions = append(consumer.subscriptions, sub)
	}

	logger.Log.Info().Strs("subjects", subjects).Str("queue", queue).Msg("NATS consumer started")
	return consumer, nil
}

func (c *Consumer) GetMessageChannel() chan *nats.Msg {
	return c.messages
}

func (c *Consumer) Close() {
	for _, sub := range c.subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			logger.Log.Warn().Err(err).Str("subject", sub.Subject).Msg("Failed to unsubscribe")
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
