package bot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/bot/features/autocomplete"
	"thumbnailbot/bot/features/category"
	"thumbnailbot/bot/features/creator"
	"thumbnailbot/bot/features/export"
	"thumbnailbot/bot/features/roles"
	"thumbnailbot/bot/features/staff"
	"thumbnailbot/bot/features/thumbnail"
	"thumbnailbot/domain/services"
	"thumbnailbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token              string
	GuildID            string // Register commands to this guild only when set
	DebugPort          int
	RosterSyncInterval time.Duration
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	// Core components
	config         Config
	session        *discordgo.Session
	uowFactory     application.UnitOfWorkFactory
	lifecycle      *application.RequestLifecycle
	rosterSync     *application.RosterSync
	members        *MemberDirectory
	guildDiscovery *GuildDiscoveryService
	metrics        *observability.MetricsProvider

	// Feature modules
	thumbnail    *thumbnail.Feature
	roles        *roles.Feature
	category     *category.Feature
	creator      *creator.Feature
	staff        *staff.Feature
	export       *export.Feature
	autocomplete *autocomplete.Feature

	// Cleanup
	stopRosterSyncWorker func()
	debugServer          *http.Server
	registeredCommands   []*discordgo.ApplicationCommand
}

// New creates a new bot instance with all features and connects it to Discord
func New(config Config, uowFactory application.UnitOfWorkFactory, metrics *observability.MetricsProvider) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	// Guild members is privileged and drives roster sync
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	poster := thumbnail.NewPoster(dg)
	lifecycle := application.NewRequestLifecycle(uowFactory, poster, metrics)
	rosterSync := application.NewRosterSync(uowFactory)
	members := NewMemberDirectory(dg)

	bot := &Bot{
		config:         config,
		session:        dg,
		uowFactory:     uowFactory,
		lifecycle:      lifecycle,
		rosterSync:     rosterSync,
		members:        members,
		guildDiscovery: NewGuildDiscoveryService(dg, uowFactory),
		metrics:        metrics,
	}

	bot.thumbnail = thumbnail.NewFeature(dg, uowFactory, lifecycle)
	bot.roles = roles.NewFeature(dg, uowFactory)
	bot.category = category.NewFeature(dg, uowFactory)
	bot.creator = creator.NewFeature(dg, uowFactory)
	bot.staff = staff.NewFeature(dg, uowFactory, rosterSync, members)
	bot.export = export.NewFeature(dg, uowFactory, metrics)
	bot.autocomplete = autocomplete.NewFeature(uowFactory)

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleMemberAdd)
	dg.AddHandler(bot.handleMemberUpdate)
	dg.AddHandler(bot.handleMemberRemove)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	bot.stopRosterSyncWorker = bot.StartRosterSyncWorker(context.Background(), config.RosterSyncInterval)

	if config.DebugPort > 0 {
		bot.debugServer = bot.StartDebugAPI(config.DebugPort)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	if b.stopRosterSyncWorker != nil {
		b.stopRosterSyncWorker()
	}
	log.Info("Background workers stopped")

	if b.debugServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.debugServer.Shutdown(ctx); err != nil {
			log.Warnf("Failed to stop debug API: %v", err)
		}
	}

	return b.session.Close()
}

// ConnectedGuilds lists the guilds the bot is in with their configuration state
func (b *Bot) ConnectedGuilds(ctx context.Context) []GuildInfo {
	return b.guildDiscovery.ConnectedGuilds(ctx)
}

// SyncGuildRoster reconciles the staff rosters of one guild with its members' roles
func (b *Bot) SyncGuildRoster(ctx context.Context, guildID int64) (*application.SyncSummary, error) {
	b.members.Invalidate(guildID)
	members, err := b.members.Snapshots(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return b.rosterSync.SyncGuild(ctx, guildID, members)
}

// handleCommands routes slash commands to the feature owning them
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	b.metrics.RecordInteraction(observability.InteractionTypeCommand, name)

	switch name {
	case "thumbnail":
		b.thumbnail.HandleCommand(s, i)
	case "role":
		b.roles.HandleCommand(s, i)
	case "category":
		b.category.HandleCommand(s, i)
	case "creator":
		b.creator.HandleCommand(s, i)
	case "staff":
		b.staff.HandleCommand(s, i)
	case "export":
		b.export.HandleCommand(s, i)
	default:
		log.Warnf("Unknown command: %s", name)
	}
}

// handleInteractions routes component, modal and autocomplete interactions
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		b.metrics.RecordInteraction(observability.InteractionTypeComponent, componentName(customID))
		b.routeComponentInteraction(s, i, customID)

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		b.metrics.RecordInteraction(observability.InteractionTypeModal, customID)
		b.routeModalInteraction(s, i, customID)

	case discordgo.InteractionApplicationCommandAutocomplete:
		b.metrics.RecordInteraction(observability.InteractionTypeAutocomplete, i.ApplicationCommandData().Name)
		b.autocomplete.HandleAutocomplete(s, i)
	}
}

// routeComponentInteraction routes button interactions
func (b *Bot) routeComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	switch {
	case strings.HasPrefix(customID, thumbnail.CustomIDPrefix):
		b.thumbnail.HandleInteraction(s, i)
	default:
		log.Debugf("Ignoring component interaction %s", customID)
	}
}

// routeModalInteraction routes modal submit interactions
func (b *Bot) routeModalInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	switch {
	case customID == thumbnail.RequestModalID:
		b.thumbnail.HandleInteraction(s, i)
	default:
		log.Debugf("Ignoring modal submit %s", customID)
	}
}

// handleGuildCreate creates the default configuration when the bot sees a guild
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ctx := context.Background()

	guildID, err := common.GuildID(g.ID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	err = common.RunInGuild(ctx, b.uowFactory, guildID, func(uow application.UnitOfWork) error {
		config, err := services.NewGuildConfigService(uow.GuildConfigRepository()).EnsureConfig(ctx, guildID)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"guild":         guildID,
			"name":          g.Name,
			"missing_roles": config.MissingRoles(),
			"single_mode":   config.SingleThumbnailChannel,
		}).Info("Guild available")
		return nil
	})
	if err != nil {
		log.Errorf("Failed to track guild %s (%s): %v", g.Name, g.ID, err)
	}
}

// componentName strips the request id from a custom id so metrics stay low-cardinality
func componentName(customID string) string {
	action, _, err := thumbnail.ParseCustomID(customID)
	if err != nil {
		return customID
	}
	return string(action)
}
