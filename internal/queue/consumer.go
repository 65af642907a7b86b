package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Broadcaster — то, что консьюмер вызывает на каждое событие
type Broadcaster interface {
	Broadcast(ctx context.Context, cmd service.BroadcastCommand) (service.BroadcastResult, error)
}

// Consumer читает wallet.broadcast и переподключается с экспоненциальной паузой
type Consumer struct {
	url     string
	target  Broadcaster
	logger  zerolog.Logger
	timeout time.Duration
}

func NewConsumer(url string, target Broadcaster, logger zerolog.Logger) *Consumer {
	return &Consumer{
		url:     url,
		target:  target,
		logger:  logger.With().Str("component", "broadcast-consumer").Logger(),
		timeout: 2 * time.Minute,
	}
}

// Run блокируется до отмены ctx
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn().Err(err).Dur("retry_in", backoff).Msg("broker dial failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn().Err(err).Msg("consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// broadcasts are slow (one push batch each), take them one at a time
	if err := ch.Qos(1, 0, false); err != nil {
		c.logger.Warn().Err(err).Msg("set qos failed")
	}
	if _, err := ch.QueueDeclare(BroadcastQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(BroadcastQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.logger.Info().Str("queue", BroadcastQueue).Msg("consuming")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.handle(ctx, d.Body, d)
		}
	}
}

// acknowledger — часть amqp.Delivery, нужная для подтверждения
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// handle подтверждает успешные события; остальные отбрасываются без повтора,
// потому что сообщение мерчанта к этому моменту уже записано или событие невалидно.
func (c *Consumer) handle(ctx context.Context, body []byte, ack acknowledger) {
	cmd, err := Decode(body)
	if err != nil {
		c.logger.Error().Err(err).Msg("drop malformed broadcast event")
		_ = ack.Nack(false, false)
		return
	}
	hctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.target.Broadcast(hctx, cmd)
	switch {
	case err == nil:
		c.logger.Info().Str("merchant_id", cmd.MerchantID).Int("sent", res.Sent).Int("failed", res.Failed).Msg("broadcast handled")
		_ = ack.Ack(false)
	case service.IsClientError(err):
		c.logger.Warn().Err(err).Str("merchant_id", cmd.MerchantID).Msg("drop broadcast event")
		_ = ack.Nack(false, false)
	default:
		c.logger.Error().Err(err).Str("merchant_id", cmd.MerchantID).Msg("broadcast failed")
		_ = ack.Nack(false, false)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
