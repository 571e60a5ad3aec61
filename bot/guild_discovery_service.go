package bot

import (
	"context"
	"fmt"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GuildInfo represents a connected guild and its staff role setup
type GuildInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MissingRoles []string `json:"missing_roles"`
	Configured   bool     `json:"configured"`
}

// GuildDiscoveryService finds the guilds roster sync should visit
type GuildDiscoveryService struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
}

// NewGuildDiscoveryService creates a new guild discovery service
func NewGuildDiscoveryService(session *discordgo.Session, uowFactory application.UnitOfWorkFactory) *GuildDiscoveryService {
	return &GuildDiscoveryService{
		session:    session,
		uowFactory: uowFactory,
	}
}

// GetGuildsWithRoles returns the guilds that configured at least one staff role
func (g *GuildDiscoveryService) GetGuildsWithRoles(ctx context.Context) ([]int64, error) {
	// Guild 0 scopes nothing; the query spans all guilds
	uow := g.uowFactory.CreateForGuild(0)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guildIDs, err := uow.GuildConfigRepository().GetGuildsWithRoles(ctx)
	if err != nil {
		return nil, err
	}
	return guildIDs, nil
}

// ConnectedGuilds describes every guild in the session state
func (g *GuildDiscoveryService) ConnectedGuilds(ctx context.Context) []GuildInfo {
	guilds := make([]GuildInfo, 0, len(g.session.State.Guilds))

	for _, guild := range g.session.State.Guilds {
		info := GuildInfo{ID: guild.ID, Name: guild.Name}

		guildID, err := common.GuildID(guild.ID)
		if err != nil {
			log.Errorf("Error parsing guild ID %s: %v", guild.ID, err)
			continue
		}

		uow := g.uowFactory.CreateForGuild(guildID)
		if err := uow.Begin(ctx); err != nil {
			log.Errorf("Error beginning transaction for guild %d: %v", guildID, err)
			guilds = append(guilds, info)
			continue
		}
		config, err := uow.GuildConfigRepository().GetByGuildID(ctx, guildID)
		uow.Rollback()
		if err != nil {
			log.Errorf("Error getting config for guild %d: %v", guildID, err)
		}
		if config != nil {
			info.Configured = true
			info.MissingRoles = config.MissingRoles()
		}

		guilds = append(guilds, info)
	}

	return guilds
}
