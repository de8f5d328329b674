package mailqueue

import (
	"context"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"
	"pms/internal/rabbitmq/schema"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

// RabbitMQ is a notification.Mailer that only enqueues messages.
type RabbitMQ struct {
	log     logging.Logger
	channel publisher
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel publisher, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

func (p *RabbitMQ) Send(ctx context.Context, msg notification.Message) error {
	email := schema.FromMessage(msg)
	body, err := email.Marshal()
	if err != nil {
		return notification.NewDeliveryError("queue:"+p.queue, err)
	}
	err = p.channel.PublishWithContext(ctx, "", p.queue, amqp.Publishing{
		ContentType:  schema.ContentType,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("queue", p.queue))
		return notification.NewDeliveryError("queue:"+p.queue, err)
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("queue", p.queue),
		logging.Entry("subject", msg.Subject),
	)
	return nil
}
