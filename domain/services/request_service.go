package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultListLimit caps request listings when no limit is given
const DefaultListLimit = 25

var youTubePrefixes = []string{
	"https://www.youtube.com/",
	"https://youtube.com/",
	"https://youtu.be/",
	"https://m.youtube.com/",
}

// ValidateSourceURL checks that url is a YouTube link and returns it trimmed
func ValidateSourceURL(url string) (string, error) {
	url = strings.TrimSpace(url)
	if err := checkLength(FieldSourceURL, url, MaxSourceURLLength); err != nil {
		return "", err
	}
	for _, prefix := range youTubePrefixes {
		if strings.HasPrefix(url, prefix) {
			return url, nil
		}
	}
	return "", ErrInvalidURL
}

// requestService implements the RequestService interface
type requestService struct {
	requestRepo     interfaces.ThumbnailRequestRepository
	recordRepo      interfaces.ThumbnailRecordRepository
	creatorRepo     interfaces.CreatorRepository
	staffRepo       interfaces.StaffRepository
	categoryRepo    interfaces.CategoryRepository
	assignmentRepo  interfaces.AssignmentRepository
	guildConfigRepo interfaces.GuildConfigRepository
	routing         interfaces.RoutingResolver
	eventPublisher  interfaces.EventPublisher
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepo interfaces.ThumbnailRequestRepository,
	recordRepo interfaces.ThumbnailRecordRepository,
	creatorRepo interfaces.CreatorRepository,
	staffRepo interfaces.StaffRepository,
	categoryRepo interfaces.CategoryRepository,
	assignmentRepo interfaces.AssignmentRepository,
	guildConfigRepo interfaces.GuildConfigRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.RequestService {
	return &requestService{
		requestRepo:     requestRepo,
		recordRepo:      recordRepo,
		creatorRepo:     creatorRepo,
		staffRepo:       staffRepo,
		categoryRepo:    categoryRepo,
		assignmentRepo:  assignmentRepo,
		guildConfigRepo: guildConfigRepo,
		routing:         NewRoutingResolver(guildConfigRepo, categoryRepo),
		eventPublisher:  eventPublisher,
	}
}

// Open validates a new request and persists it in the open state.
// The public control is posted by the caller after commit.
func (s *requestService) Open(ctx context.Context, params interfaces.OpenRequestParams) (*entities.ThumbnailRequest, error) {
	var editor *entities.StaffMember
	if !params.IsAdmin {
		var err error
		editor, err = s.staffRepo.GetActiveByDiscordID(ctx, entities.StaffKindEditor, params.ActorID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up editor: %w", err)
		}
		if editor == nil {
			return nil, &UnauthorizedError{Action: "request thumbnails"}
		}
	}

	sourceURL, err := ValidateSourceURL(params.SourceURL)
	if err != nil {
		return nil, err
	}

	creator, err := s.creatorRepo.GetActiveByName(ctx, strings.TrimSpace(params.CreatorName))
	if err != nil {
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}
	if creator == nil {
		return nil, &NotFoundError{Entity: EntityCreator}
	}

	if editor != nil {
		assigned, err := s.assignmentRepo.Exists(ctx, editor.ID, creator.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check assignment: %w", err)
		}
		if !assigned {
			return nil, &UnauthorizedError{Action: "request thumbnails for this creator"}
		}
	}

	destination, err := s.routing.ResolveDestination(ctx, params.GuildID, params.Category)
	if err != nil {
		return nil, err
	}

	request := entities.NewThumbnailRequest(params.GuildID, creator, destination.Category, sourceURL, params.ActorID, params.ActorName, destination.ChannelID)
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail request: %w", err)
	}

	s.publish(events.RequestOpenedEvent{
		RequestID:   request.ID.String(),
		GuildID:     request.GuildID,
		CreatorName: request.CreatorName,
		Category:    request.Category,
		SourceURL:   request.SourceURL,
		EditorID:    request.EditorDiscordID,
		ChannelID:   request.ChannelID,
	})

	return request, nil
}

// Get returns a request by id
func (s *requestService) Get(ctx context.Context, id uuid.UUID) (*entities.ThumbnailRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get thumbnail request: %w", err)
	}
	if request == nil {
		return nil, &NotFoundError{Entity: EntityRequest}
	}
	return request, nil
}

// Claim moves an open request to claimed for an active designer.
// Concurrent claimers race on the stored state and only one wins.
func (s *requestService) Claim(ctx context.Context, id uuid.UUID, designerID int64, designerName string) (*entities.ThumbnailRequest, error) {
	designer, err := s.staffRepo.GetActiveByDiscordID(ctx, entities.StaffKindDesigner, designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up designer: %w", err)
	}
	if designer == nil {
		return nil, &UnauthorizedError{Action: "claim thumbnail requests"}
	}

	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireState(request, entities.RequestStateOpen); err != nil {
		return nil, err
	}

	if designerName == "" {
		designerName = designer.DisplayName
	}
	now := time.Now().UTC()
	request.State = entities.RequestStateClaimed
	request.DesignerID = &designerID
	request.DesignerName = &designerName
	request.PrivateChannelID = nil
	request.ControlMessageID = nil
	request.ClaimCount++
	request.ClaimedAt = &now

	updated, err := s.requestRepo.UpdateIfState(ctx, request, entities.RequestStateOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to claim thumbnail request: %w", err)
	}
	if !updated {
		return nil, ErrAlreadyClaimed
	}

	s.publish(events.RequestClaimedEvent{
		RequestID:    request.ID.String(),
		GuildID:      request.GuildID,
		DesignerID:   designerID,
		DesignerName: designerName,
		ClaimCount:   request.ClaimCount,
	})

	return request, nil
}

// CompensateClaim undoes a claim whose public control could not be updated
func (s *requestService) CompensateClaim(ctx context.Context, id uuid.UUID, designerID int64) (*entities.ThumbnailRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !request.IsClaimedBy(designerID) {
		return nil, ErrNotClaimed
	}

	clearClaim(request)
	if request.ClaimCount > 0 {
		request.ClaimCount--
	}

	updated, err := s.requestRepo.UpdateIfState(ctx, request, entities.RequestStateClaimed)
	if err != nil {
		return nil, fmt.Errorf("failed to compensate claim: %w", err)
	}
	if !updated {
		return nil, ErrNotClaimed
	}

	// The claimed event was already published, listeners need to see it undone
	s.publish(events.RequestUnclaimedEvent{
		RequestID:  request.ID.String(),
		GuildID:    request.GuildID,
		DesignerID: designerID,
		ActorID:    designerID,
	})

	return request, nil
}

// Unclaim returns a claimed request to open.
// Only the claimant or a member allowed to manage channels may do this.
func (s *requestService) Unclaim(ctx context.Context, id uuid.UUID, actorID int64, canManage bool) (*interfaces.UnclaimResult, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireState(request, entities.RequestStateClaimed); err != nil {
		return nil, err
	}
	if !canManage && !request.IsClaimedBy(actorID) {
		return nil, &UnauthorizedError{Action: "unclaim this request"}
	}

	result := &interfaces.UnclaimResult{
		DesignerID:       *request.DesignerID,
		PublicMessageID:  request.MessageID,
		PrivateChannelID: request.PrivateChannelID,
	}

	clearClaim(request)

	updated, err := s.requestRepo.UpdateIfState(ctx, request, entities.RequestStateClaimed)
	if err != nil {
		return nil, fmt.Errorf("failed to unclaim thumbnail request: %w", err)
	}
	if !updated {
		return nil, ErrNotClaimed
	}

	s.publish(events.RequestUnclaimedEvent{
		RequestID:  request.ID.String(),
		GuildID:    request.GuildID,
		DesignerID: result.DesignerID,
		ActorID:    actorID,
	})

	result.Request = request
	return result, nil
}

// Approve checks that the actor may approve and that the request is claimed
func (s *requestService) Approve(ctx context.Context, id uuid.UUID, actorID int64, isAdmin bool) (*entities.ThumbnailRequest, error) {
	if err := s.requireApprover(ctx, actorID, isAdmin); err != nil {
		return nil, err
	}

	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireState(request, entities.RequestStateClaimed); err != nil {
		return nil, err
	}

	return request, nil
}

// Confirm writes the thumbnail record and moves the request to submitted.
// Both writes share the caller's transaction, so a failed compare-and-set
// must be followed by a rollback.
func (s *requestService) Confirm(ctx context.Context, id uuid.UUID, actorID int64, isAdmin bool) (*interfaces.SubmitResult, error) {
	if err := s.requireApprover(ctx, actorID, isAdmin); err != nil {
		return nil, err
	}

	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireState(request, entities.RequestStateClaimed); err != nil {
		return nil, err
	}

	designer, err := s.staffRepo.GetActiveByDiscordID(ctx, entities.StaffKindDesigner, *request.DesignerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up designer: %w", err)
	}
	if designer == nil {
		return nil, &NotFoundError{Entity: EntityDesigner}
	}

	creator, err := s.creatorRepo.GetByID(ctx, request.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}
	if creator == nil || !creator.IsActive {
		return nil, &NotFoundError{Entity: EntityCreator}
	}

	if err := s.revalidateCategory(ctx, request); err != nil {
		return nil, err
	}

	record := &entities.ThumbnailRecord{
		GuildID:    request.GuildID,
		RequestID:  &request.ID,
		DesignerID: designer.ID,
		CreatorID:  creator.ID,
		Category:   request.Category,
		SourceURL:  request.SourceURL,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail record: %w", err)
	}

	now := time.Now().UTC()
	request.State = entities.RequestStateSubmitted
	request.RecordID = &record.ID
	request.SubmittedAt = &now

	updated, err := s.requestRepo.UpdateIfState(ctx, request, entities.RequestStateClaimed)
	if err != nil {
		return nil, fmt.Errorf("failed to submit thumbnail request: %w", err)
	}
	if !updated {
		return nil, ErrAlreadySubmitted
	}

	s.publish(events.RequestSubmittedEvent{
		RequestID:  request.ID.String(),
		GuildID:    request.GuildID,
		RecordID:   record.ID,
		DesignerID: *request.DesignerID,
		CreatorID:  creator.ID,
		Category:   request.Category,
		ApprovedBy: actorID,
	})

	return &interfaces.SubmitResult{Request: request, Record: record}, nil
}

// PrepareRepost returns an open request whose public control should be posted again
func (s *requestService) PrepareRepost(ctx context.Context, id uuid.UUID) (*entities.ThumbnailRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireState(request, entities.RequestStateOpen); err != nil {
		return nil, err
	}
	return request, nil
}

// SetPublicMessage stores the live public control message id
func (s *requestService) SetPublicMessage(ctx context.Context, id uuid.UUID, messageID *int64) error {
	if err := s.requestRepo.SetPublicMessage(ctx, id, messageID); err != nil {
		return fmt.Errorf("failed to store public message: %w", err)
	}
	return nil
}

// SetClaimResources stores the private channel and control message ids
func (s *requestService) SetClaimResources(ctx context.Context, id uuid.UUID, privateChannelID, controlMessageID *int64) error {
	if err := s.requestRepo.SetClaimResources(ctx, id, privateChannelID, controlMessageID); err != nil {
		return fmt.Errorf("failed to store claim resources: %w", err)
	}
	return nil
}

// List returns requests in a state
func (s *requestService) List(ctx context.Context, state entities.RequestState, limit int) ([]*entities.ThumbnailRequest, error) {
	if !state.IsValid() {
		return nil, fmt.Errorf("unknown request state %q", state)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	requests, err := s.requestRepo.ListByState(ctx, state, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list thumbnail requests: %w", err)
	}
	return requests, nil
}

func (s *requestService) requireApprover(ctx context.Context, actorID int64, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	overseer, err := s.staffRepo.GetActiveByDiscordID(ctx, entities.StaffKindOverseer, actorID)
	if err != nil {
		return fmt.Errorf("failed to look up overseer: %w", err)
	}
	if overseer == nil {
		return &UnauthorizedError{Action: "approve thumbnails"}
	}
	return nil
}

// revalidateCategory only applies in category mode and when the request carries a label
func (s *requestService) revalidateCategory(ctx context.Context, request *entities.ThumbnailRequest) error {
	if request.Category == "" {
		return nil
	}

	config, err := s.guildConfigRepo.GetByGuildID(ctx, request.GuildID)
	if err != nil {
		return fmt.Errorf("failed to get guild config: %w", err)
	}
	if config != nil && config.SingleThumbnailChannel {
		return nil
	}

	category, err := s.categoryRepo.GetActiveByName(ctx, entities.NormalizeCategoryName(request.Category))
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return &NotFoundError{Entity: EntityCategory}
	}
	return nil
}

func (s *requestService) publish(event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to publish request event")
	}
}

// requireState maps an unexpected state to the matching lifecycle error
func requireState(request *entities.ThumbnailRequest, want entities.RequestState) error {
	if request.State == want {
		return nil
	}
	switch request.State {
	case entities.RequestStateSubmitted:
		return ErrAlreadySubmitted
	case entities.RequestStateClaimed:
		return ErrAlreadyClaimed
	default:
		return ErrNotClaimed
	}
}

func clearClaim(request *entities.ThumbnailRequest) {
	request.State = entities.RequestStateOpen
	request.DesignerID = nil
	request.DesignerName = nil
	request.PrivateChannelID = nil
	request.ControlMessageID = nil
	request.ClaimedAt = nil
}
