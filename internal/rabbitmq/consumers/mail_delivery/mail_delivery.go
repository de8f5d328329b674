package maildelivery

import (
	"context"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"
	"pms/internal/rabbitmq"
	"pms/internal/rabbitmq/schema"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	mailer  notification.Mailer
	timeout time.Duration
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	mailer notification.Mailer,
	timeout time.Duration,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if mailer == nil {
		panic(e.NewNilArgumentError("mailer"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, mailer: mailer, timeout: timeout}
}

// Consume delivers queued emails until the channel is closed.
func (c *Consumer) Consume(ctx context.Context) {
	for delivery := range c.channel.Consume(c.queue, "") {
		c.handle(ctx, delivery)
	}
}

// handle acks delivered and malformed messages. A failed delivery is
// requeued once; a redelivered message that fails again is dropped.
func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	email := &schema.Email{}
	if err := email.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal queued email.",
			logging.Entry("err", err),
			logging.Entry("messageId", delivery.MessageId),
		)
		c.ack(ctx, delivery)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	err := c.mailer.Send(sendCtx, email.Message())
	if err == nil {
		c.log.Info(ctx, "Queued email has been delivered.", logging.Entry("subject", email.Subject))
		c.ack(ctx, delivery)
		return
	}

	requeue := !delivery.Redelivered
	c.log.Error(
		ctx,
		"Could not deliver queued email.",
		logging.Entry("subject", email.Subject),
		logging.Entry("requeue", requeue),
		logging.Entry("err", err),
	)
	if err := delivery.Nack(false, requeue); err != nil {
		c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) ack(ctx context.Context, delivery amqp.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
