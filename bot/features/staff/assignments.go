package staff

import (
	"context"
	"fmt"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func assignments(uow application.UnitOfWork) interfaces.AssignmentService {
	return services.NewAssignmentService(uow.CreatorRepository(), uow.StaffRepository(), uow.AssignmentRepository())
}

// handleAssign handles /staff assign-editor editor creator
func (f *Feature) handleAssign(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, editorID, creator, ok := assignmentArgs(s, i, options)
	if !ok {
		return
	}

	ctx := context.Background()
	err := common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		return assignments(uow).Assign(ctx, editorID, creator)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guild":   guildID,
		"editor":  editorID,
		"creator": creator,
	}).Info("Editor assigned")

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ %s can now request thumbnails for **%s**.", common.GetUserMention(editorID), creator))
}

// handleUnassign handles /staff unassign-editor editor creator
func (f *Feature) handleUnassign(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, editorID, creator, ok := assignmentArgs(s, i, options)
	if !ok {
		return
	}

	ctx := context.Background()
	err := common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		return assignments(uow).Unassign(ctx, editorID, creator)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("✅ %s is no longer assigned to **%s**.", common.GetUserMention(editorID), creator))
}

// handleEditorAssignments handles /staff editor-assignments editor
func (f *Feature) handleEditorAssignments(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}
	editorID, ok := options.Snowflake("editor")
	if !ok {
		common.RespondWithError(s, i, "Invalid editor selected")
		return
	}

	ctx := context.Background()
	var creators []*entities.Creator
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		creators, err = assignments(uow).CreatorsFor(ctx, editorID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	names := make([]string, 0, len(creators))
	for _, creator := range creators {
		names = append(names, creator.Name)
	}
	common.RespondEphemeral(s, i, fmt.Sprintf("**Creators assigned to** %s\n%s",
		common.GetUserMention(editorID), common.FormatList(names, "No creators assigned.")))
}

// handleCreatorAssignments handles /staff creator-assignments creator
func (f *Feature) handleCreatorAssignments(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return
	}
	creator := options.StringValue("creator")

	ctx := context.Background()
	var editors []*entities.StaffMember
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		editors, err = assignments(uow).EditorsFor(ctx, creator)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("**Editors assigned to %s**\n%s", creator, FormatStaff(editors)))
}

func assignmentArgs(s *discordgo.Session, i *discordgo.InteractionCreate, options common.Options) (int64, int64, string, bool) {
	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, msgGuildOnly)
		return 0, 0, "", false
	}
	editorID, ok := options.Snowflake("editor")
	if !ok {
		common.RespondWithError(s, i, "Invalid editor selected")
		return 0, 0, "", false
	}
	creator := options.StringValue("creator")
	if creator == "" {
		common.RespondWithError(s, i, "Pick a creator")
		return 0, 0, "", false
	}
	return guildID, editorID, creator, true
}
