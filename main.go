package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"thumbnailbot/cmd"
	"thumbnailbot/config"

	log "github.com/sirupsen/logrus"
)

func main() {
	config.LoadDotEnv()

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewRootCommand().ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
