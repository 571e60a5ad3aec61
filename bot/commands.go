package bot

import (
	"fmt"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var adminPermission int64 = discordgo.PermissionAdministrator

// staffKindChoices lists the roster kinds for kind options
func staffKindChoices() []*discordgo.ApplicationCommandOptionChoice {
	kinds := entities.AllStaffKinds()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(kinds))
	for _, kind := range kinds {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  kind.Label(),
			Value: string(kind),
		})
	}
	return choices
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

func creatorOption(name string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         name,
		Description:  "Creator name",
		Required:     required,
		Autocomplete: true,
		MaxLength:    services.MaxNameLength,
	}
}

func categoryOption(name string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         name,
		Description:  "Category name",
		Required:     required,
		Autocomplete: true,
		MaxLength:    services.MaxNameLength,
	}
}

func channelOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		Required:     required,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
	}
}

func userOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: description,
		Required:    true,
	}
}

func roleOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionRole,
		Name:        "role",
		Description: "Discord role",
		Required:    true,
	}
}

func staffKindOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "kind",
		Description: "Staff roster",
		Required:    required,
		Choices:     staffKindChoices(),
	}
}

// Commands returns every slash command the bot owns
func Commands() []*discordgo.ApplicationCommand {
	minYear := float64(2000)
	minMonth := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "thumbnail",
			Description: "Request and manage thumbnails",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("request", "Request a thumbnail for a creator's video",
					creatorOption("creator", true),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "url",
						Description: "YouTube link of the video",
						Required:    true,
						MaxLength:   services.MaxSourceURLLength,
					},
					categoryOption("category", false),
				),
				subcommand("panel", "Post a panel with a Request Thumbnail button in this channel"),
				subcommand("repost", "Post the control of a request again after a Discord failure",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "Request id",
						Required:    true,
					},
				),
				subcommand("list", "List recent thumbnail requests",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "state",
						Description: "Only requests in this state",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Open", Value: string(entities.RequestStateOpen)},
							{Name: "Claimed", Value: string(entities.RequestStateClaimed)},
							{Name: "Submitted", Value: string(entities.RequestStateSubmitted)},
						},
					},
				),
			},
		},
		{
			Name:                     "role",
			Description:              "Configure staff roles",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("set-editor", "Set the role of editors who request thumbnails", roleOption()),
				subcommand("set-designer", "Set the role of designers who claim requests", roleOption()),
				subcommand("set-overseer", "Set the role of overseers who approve thumbnails", roleOption()),
				subcommand("list-config", "Show the role and channel configuration"),
			},
		},
		{
			Name:                     "category",
			Description:              "Manage thumbnail categories and routing",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("add", "Add a category",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Category name",
						Required:    true,
						MaxLength:   services.MaxNameLength,
					},
					channelOption("channel", "Channel its requests go to", false),
				),
				subcommand("remove", "Remove a category", categoryOption("name", true)),
				subcommand("list", "List categories and their channels"),
				subcommand("set-channel", "Route a category to a channel",
					categoryOption("category", true),
					channelOption("channel", "Channel its requests go to", true),
				),
				subcommand("toggle-single-channel", "Switch between one shared channel and per-category channels"),
				subcommand("set-single-channel", "Set the shared thumbnail channel and enable it",
					channelOption("channel", "Channel all requests go to", true),
				),
			},
		},
		{
			Name:                     "creator",
			Description:              "Manage creators",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("add", "Add a creator",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Creator name",
						Required:    true,
						MaxLength:   services.MaxNameLength,
					},
				),
				subcommand("remove", "Remove a creator", creatorOption("name", true)),
				subcommand("list", "List creators"),
			},
		},
		{
			Name:                     "staff",
			Description:              "Manage editors, designers, overseers and assignments",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("add", "Add a member to a staff roster", staffKindOption(true), userOption("user", "Member to add")),
				subcommand("remove", "Remove a member from a staff roster", staffKindOption(true), userOption("user", "Member to remove")),
				subcommand("list", "List staff rosters", staffKindOption(false)),
				subcommand("sync", "Update rosters from the configured roles"),
				subcommand("assign-editor", "Let an editor request thumbnails for a creator",
					userOption("editor", "Editor"), creatorOption("creator", true)),
				subcommand("unassign-editor", "Remove an editor from a creator",
					userOption("editor", "Editor"), creatorOption("creator", true)),
				subcommand("editor-assignments", "List the creators of an editor", userOption("editor", "Editor")),
				subcommand("creator-assignments", "List the editors of a creator", creatorOption("creator", true)),
			},
		},
		{
			Name:                     "export",
			Description:              "Export completed thumbnails as CSV",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("current-month", "Export this month's thumbnails"),
				subcommand("month", "Export the thumbnails of a month",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "year",
						Description: "Year, e.g. 2026",
						Required:    true,
						MinValue:    &minYear,
						MaxValue:    9999,
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "month",
						Description: "Month number, 1-12",
						Required:    true,
						MinValue:    &minMonth,
						MaxValue:    12,
					},
				),
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands() {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
		b.registeredCommands = append(b.registeredCommands, created)
	}

	log.WithFields(log.Fields{
		"count": len(b.registeredCommands),
		"guild": b.config.GuildID,
	}).Info("Slash commands registered")
	return nil
}
