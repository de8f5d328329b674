package main

import (
	"context"
	"os"
	"os/signal"
	"pms/internal/app/consumers"
	"pms/internal/app/deps"
	"pms/internal/core/domain/logging"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	deps, shutdownDeps := deps.InitMailerDeps()
	defer shutdownDeps()

	shutdownConsumers := consumers.InitConsumers(deps)
	deps.Logger.Info(
		context.Background(),
		"Mail worker has started.",
		logging.Entry("transport", deps.Config.DirectNotifier().Transport()),
	)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	deps.Logger.Info(context.Background(), "Stopping mail worker.")
	shutdownConsumers()
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
