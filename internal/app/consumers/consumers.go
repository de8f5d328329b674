package consumers

import (
	"context"
	"pms/internal/app/deps"
	dl "pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"
	maildelivery "pms/internal/rabbitmq/consumers/mail_delivery"
)

const prefetchCount = 10

func initMailDeliveryConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.Notifier.(notification.Queue).Queue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.Qos(prefetchCount); err != nil {
		deps.Logger.Error(context.Background(), "Could not set RabbitMQ QoS.", dl.Entry("err", err))
		panic(err)
	}

	mailDeliveryConsumer := maildelivery.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.Mailer,
		deps.Config.NotifierTimeout,
	)
	go mailDeliveryConsumer.Consume(context.Background())

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownMailDeliveryConsumer := initMailDeliveryConsumer(deps)

	return func() {
		shutdownMailDeliveryConsumer()
	}
}
