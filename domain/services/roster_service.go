package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// SearchLimit caps incremental search results
const SearchLimit = 10

// rosterService implements the RosterService interface
type rosterService struct {
	guildID        int64
	creatorRepo    interfaces.CreatorRepository
	staffRepo      interfaces.StaffRepository
	categoryRepo   interfaces.CategoryRepository
	eventPublisher interfaces.EventPublisher
}

// NewRosterService creates a new roster service
func NewRosterService(
	guildID int64,
	creatorRepo interfaces.CreatorRepository,
	staffRepo interfaces.StaffRepository,
	categoryRepo interfaces.CategoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.RosterService {
	return &rosterService{
		guildID:        guildID,
		creatorRepo:    creatorRepo,
		staffRepo:      staffRepo,
		categoryRepo:   categoryRepo,
		eventPublisher: eventPublisher,
	}
}

// AddCreator creates a creator or reactivates a previously removed one
func (s *rosterService) AddCreator(ctx context.Context, name string) (*entities.Creator, interfaces.RosterResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", ErrInvalidName
	}
	if err := checkLength(FieldName, name, MaxNameLength); err != nil {
		return nil, "", err
	}

	existing, err := s.creatorRepo.GetByName(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up creator: %w", err)
	}

	if existing == nil {
		creator, err := s.creatorRepo.Create(ctx, name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create creator: %w", err)
		}
		s.publishRosterChange(EntityCreator, creator.Name, events.RosterActionCreated)
		return creator, interfaces.RosterCreated, nil
	}

	if existing.IsActive {
		return nil, "", &AlreadyExistsError{Entity: EntityCreator}
	}

	existing.IsActive = true
	if err := s.creatorRepo.Update(ctx, existing); err != nil {
		return nil, "", fmt.Errorf("failed to reactivate creator: %w", err)
	}
	s.publishRosterChange(EntityCreator, existing.Name, events.RosterActionReactivated)

	return existing, interfaces.RosterReactivated, nil
}

// RemoveCreator deactivates a creator without touching assignments or requests
func (s *rosterService) RemoveCreator(ctx context.Context, name string) error {
	creator, err := s.creatorRepo.GetActiveByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to look up creator: %w", err)
	}
	if creator == nil {
		return &NotFoundError{Entity: EntityCreator}
	}

	creator.IsActive = false
	if err := s.creatorRepo.Update(ctx, creator); err != nil {
		return fmt.Errorf("failed to deactivate creator: %w", err)
	}
	s.publishRosterChange(EntityCreator, creator.Name, events.RosterActionRemoved)

	return nil
}

// ListCreators returns active creators ordered by name
func (s *rosterService) ListCreators(ctx context.Context) ([]*entities.Creator, error) {
	creators, err := s.creatorRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	return creators, nil
}

// SearchCreators returns active creators whose name contains term
func (s *rosterService) SearchCreators(ctx context.Context, term string) ([]*entities.Creator, error) {
	creators, err := s.creatorRepo.SearchActive(ctx, strings.TrimSpace(term), SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search creators: %w", err)
	}
	return creators, nil
}

// AddStaff creates or reactivates a staff member of the given kind
func (s *rosterService) AddStaff(ctx context.Context, kind entities.StaffKind, discordID int64, displayName string) (*entities.StaffMember, interfaces.RosterResult, error) {
	if !kind.IsValid() {
		return nil, "", fmt.Errorf("unknown staff kind %q", kind)
	}

	existing, err := s.staffRepo.GetByDiscordID(ctx, kind, discordID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up %s: %w", kind, err)
	}

	if existing == nil {
		member, err := s.staffRepo.Create(ctx, kind, discordID, displayName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create %s: %w", kind, err)
		}
		s.publishRosterChange(string(kind), strconv.FormatInt(discordID, 10), events.RosterActionCreated)
		return member, interfaces.RosterCreated, nil
	}

	if existing.IsActive {
		return nil, "", &AlreadyExistsError{Entity: string(kind)}
	}

	existing.IsActive = true
	if displayName != "" {
		existing.DisplayName = displayName
	}
	if err := s.staffRepo.Update(ctx, existing); err != nil {
		return nil, "", fmt.Errorf("failed to reactivate %s: %w", kind, err)
	}
	s.publishRosterChange(string(kind), strconv.FormatInt(discordID, 10), events.RosterActionReactivated)

	return existing, interfaces.RosterReactivated, nil
}

// RemoveStaff deactivates a staff member of the given kind
func (s *rosterService) RemoveStaff(ctx context.Context, kind entities.StaffKind, discordID int64) error {
	member, err := s.staffRepo.GetActiveByDiscordID(ctx, kind, discordID)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", kind, err)
	}
	if member == nil {
		return &NotFoundError{Entity: string(kind)}
	}

	member.IsActive = false
	if err := s.staffRepo.Update(ctx, member); err != nil {
		return fmt.Errorf("failed to deactivate %s: %w", kind, err)
	}
	s.publishRosterChange(string(kind), strconv.FormatInt(discordID, 10), events.RosterActionRemoved)

	return nil
}

// ListStaff returns active staff of a kind ordered by display name
func (s *rosterService) ListStaff(ctx context.Context, kind entities.StaffKind) ([]*entities.StaffMember, error) {
	members, err := s.staffRepo.ListActive(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return members, nil
}

// RefreshDisplayName updates the stored display name of an active staff member
func (s *rosterService) RefreshDisplayName(ctx context.Context, kind entities.StaffKind, discordID int64, displayName string) error {
	if displayName == "" {
		return nil
	}

	member, err := s.staffRepo.GetActiveByDiscordID(ctx, kind, discordID)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", kind, err)
	}
	if member == nil {
		return &NotFoundError{Entity: string(kind)}
	}
	if member.DisplayName == displayName {
		return nil
	}

	member.DisplayName = displayName
	if err := s.staffRepo.Update(ctx, member); err != nil {
		return fmt.Errorf("failed to update %s display name: %w", kind, err)
	}

	return nil
}

// AddCategory creates or reactivates a category
func (s *rosterService) AddCategory(ctx context.Context, name string, channelID *int64) (*entities.Category, interfaces.RosterResult, error) {
	name = entities.NormalizeCategoryName(name)
	if name == "" {
		return nil, "", ErrInvalidName
	}
	if err := checkLength(FieldName, name, MaxNameLength); err != nil {
		return nil, "", err
	}

	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up category: %w", err)
	}

	if existing == nil {
		category, err := s.categoryRepo.Create(ctx, name, channelID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create category: %w", err)
		}
		s.publishRosterChange(EntityCategory, name, events.RosterActionCreated)
		return category, interfaces.RosterCreated, nil
	}

	if existing.IsActive {
		return nil, "", &AlreadyExistsError{Entity: EntityCategory}
	}

	existing.IsActive = true
	if channelID != nil {
		existing.ChannelID = channelID
	}
	if err := s.categoryRepo.Update(ctx, existing); err != nil {
		return nil, "", fmt.Errorf("failed to reactivate category: %w", err)
	}
	s.publishRosterChange(EntityCategory, name, events.RosterActionReactivated)

	return existing, interfaces.RosterReactivated, nil
}

// RemoveCategory deactivates a category
func (s *rosterService) RemoveCategory(ctx context.Context, name string) error {
	category, err := s.categoryRepo.GetActiveByName(ctx, entities.NormalizeCategoryName(name))
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return &NotFoundError{Entity: EntityCategory}
	}

	category.IsActive = false
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return fmt.Errorf("failed to deactivate category: %w", err)
	}
	s.publishRosterChange(EntityCategory, category.Name, events.RosterActionRemoved)

	return nil
}

// ListCategories returns active categories ordered by name
func (s *rosterService) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// SearchCategories returns active categories whose name contains term
func (s *rosterService) SearchCategories(ctx context.Context, term string) ([]*entities.Category, error) {
	categories, err := s.categoryRepo.SearchActive(ctx, entities.NormalizeCategoryName(term), SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return categories, nil
}

// SetCategoryChannel points an active category at a channel
func (s *rosterService) SetCategoryChannel(ctx context.Context, name string, channelID int64) (*entities.Category, error) {
	category, err := s.categoryRepo.GetActiveByName(ctx, entities.NormalizeCategoryName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return nil, &NotFoundError{Entity: EntityCategory}
	}

	category.ChannelID = &channelID
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category channel: %w", err)
	}

	return category, nil
}

func (s *rosterService) publishRosterChange(kind, identity string, action events.RosterAction) {
	if s.eventPublisher == nil {
		return
	}
	event := events.RosterChangedEvent{
		GuildID:  s.guildID,
		Kind:     kind,
		Identity: identity,
		Action:   action,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"kind":     kind,
			"identity": identity,
			"error":    err,
		}).Error("Failed to publish roster change event")
	}
}
