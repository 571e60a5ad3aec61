package cmd

import (
	"context"
	"fmt"
	"time"

	"thumbnailbot/bot"
	"thumbnailbot/config"
	"thumbnailbot/database"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/infrastructure"
	"thumbnailbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting thumbnail bot...")

	// Load configuration
	cfg := config.Get()
	cfg.ConfigureLogging()

	// Initialize metrics
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics := observability.GetMetrics()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event publishing
	var eventPublisher interfaces.EventPublisher = infrastructure.NewNoopEventPublisher()
	var natsClient *infrastructure.NATSClient
	if cfg.NATSEnabled() {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			db.Close()
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}

		subjectMapper := infrastructure.NewEventSubjectMapper()
		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, subjectMapper, metrics)
		if err := natsPublisher.EnsureThumbnailEventStream(); err != nil {
			log.WithError(err).Warn("Failed to ensure thumbnail event stream")
		}
		eventPublisher = natsPublisher

		subscriber := infrastructure.NewNATSEventSubscriber(natsClient, subjectMapper)
		if err := bot.RegisterBotSubscriptions(subscriber, metrics); err != nil {
			log.WithError(err).Warn("Failed to register event subscriptions")
		}
	} else {
		log.Info("NATS_SERVERS not set, lifecycle events will not be published")
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:              cfg.DiscordToken,
		GuildID:            cfg.GuildID,
		DebugPort:          cfg.DebugPort,
		RosterSyncInterval: cfg.RosterSyncInterval,
	}
	discordBot, err := bot.New(botConfig, uowFactory, metrics)
	if err != nil {
		if natsClient != nil {
			natsClient.Close()
		}
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS client")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
