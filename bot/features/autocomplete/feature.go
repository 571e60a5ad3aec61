package autocomplete

import (
	"context"
	"strings"

	"thumbnailbot/application"
	"thumbnailbot/bot/common"
	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature answers autocomplete for creator and category options
type Feature struct {
	uowFactory application.UnitOfWorkFactory
}

// NewFeature creates a new autocomplete feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
	}
}

// Source is what an option autocompletes from
type Source int

const (
	SourceNone Source = iota
	SourceCreators
	SourceCategories
)

// SourceFor picks the source of a focused option. Generic "name" options
// take the source of their command.
func SourceFor(command, option string) Source {
	switch option {
	case "creator":
		return SourceCreators
	case "category":
		return SourceCategories
	case "name":
		switch command {
		case "creator":
			return SourceCreators
		case "category":
			return SourceCategories
		}
	}
	return SourceNone
}

// HandleAutocomplete responds with up to ten matching choices
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	focused := common.FocusedOption(i)
	if focused == nil {
		return
	}

	guildID, err := common.GuildID(i.GuildID)
	if err != nil {
		common.RespondWithChoices(s, i, nil)
		return
	}

	term := focused.StringValue()
	ctx := context.Background()
	var names []string

	switch SourceFor(i.ApplicationCommandData().Name, focused.Name) {
	case SourceCreators:
		names, err = f.creatorNames(ctx, s, i, guildID, term)
	case SourceCategories:
		names, err = f.categoryNames(ctx, guildID, term)
	}
	if err != nil {
		log.WithFields(log.Fields{
			"guild":  guildID,
			"option": focused.Name,
			"error":  err,
		}).Error("Autocomplete lookup failed")
	}

	common.RespondWithChoices(s, i, Choices(names))
}

// creatorNames lists every matching creator for admins and only assigned
// creators for everyone else
func (f *Feature) creatorNames(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, term string) ([]string, error) {
	isAdmin := common.IsUserAdmin(s, i)
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil && !isAdmin {
		return nil, err
	}

	var creators []*entities.Creator
	err = common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		if isAdmin {
			creators, err = services.NewRosterService(guildID, uow.CreatorRepository(), uow.StaffRepository(), uow.CategoryRepository(), uow.EventBus()).
				SearchCreators(ctx, term)
			return err
		}
		creators, err = services.NewAssignmentService(uow.CreatorRepository(), uow.StaffRepository(), uow.AssignmentRepository()).
			CreatorsFor(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(creators))
	for _, creator := range creators {
		names = append(names, creator.Name)
	}
	return FilterNames(names, term), nil
}

func (f *Feature) categoryNames(ctx context.Context, guildID int64, term string) ([]string, error) {
	var categories []*entities.Category
	err := common.RunInGuild(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		categories, err = services.NewRosterService(guildID, uow.CreatorRepository(), uow.StaffRepository(), uow.CategoryRepository(), uow.EventBus()).
			SearchCategories(ctx, term)
		return err
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names, nil
}

// FilterNames keeps names containing term, ignoring case, capped at the choice limit
func FilterNames(names []string, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	filtered := make([]string, 0, min(len(names), common.MaxAutocompleteChoices))
	for _, name := range names {
		if len(filtered) == common.MaxAutocompleteChoices {
			break
		}
		if strings.Contains(strings.ToLower(name), term) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Choices turns names into autocomplete choices whose value is the name
func Choices(names []string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  common.Truncate(name, 100),
			Value: name,
		})
	}
	return choices
}
