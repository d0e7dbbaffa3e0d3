package rabbit

import (
	"context"

	"github.com/mehtaam/shopstack/internal/adapter/config"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Broker owns the AMQP connection and one channel used by all consumers.
type Broker struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	conf    *config.Rabbit
	logger  *zap.Logger
}

func NewBroker(conf *config.Rabbit, logger *zap.Logger) (*Broker, error) {
	conn, err := amqp091.Dial(conf.URL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.Qos(conf.ConsumerPrefetch, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Broker{
		conn:    conn,
		channel: channel,
		conf:    conf,
		logger:  logger,
	}, nil
}

func (b *Broker) Close() {
	if err := b.channel.Close(); err != nil {
		b.logger.Warn("closing amqp channel", zap.Error(err))
	}
	if err := b.conn.Close(); err != nil {
		b.logger.Warn("closing amqp connection", zap.Error(err))
	}
}

// handlerFunc processes one message body. A returned error requeues the
// delivery once; redelivered failures are dropped to keep poison messages
// from looping forever.
type handlerFunc func(ctx context.Context, body []byte) error

func (b *Broker) consume(ctx context.Context, queue string, handle handlerFunc) error {
	if _, err := b.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}

	deliveries, err := b.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					b.logger.Warn("amqp delivery channel closed", zap.String("queue", queue))
					return
				}
				if err := handle(ctx, d.Body); err != nil {
					b.logger.Error("processing message",
						zap.String("queue", queue),
						zap.Bool("redelivered", d.Redelivered),
						zap.Error(err))
					if nackErr := d.Nack(false, !d.Redelivered); nackErr != nil {
						b.logger.Warn("nack failed", zap.Error(nackErr))
					}
					continue
				}
				if ackErr := d.Ack(false); ackErr != nil {
					b.logger.Warn("ack failed", zap.Error(ackErr))
				}
			}
		}
	}()

	b.logger.Info("amqp consumer started", zap.String("queue", queue))
	return nil
}
