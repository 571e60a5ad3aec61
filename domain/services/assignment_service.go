package services

import (
	"context"
	"fmt"
	"strings"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/interfaces"
)

// assignmentService implements the AssignmentService interface
type assignmentService struct {
	creatorRepo    interfaces.CreatorRepository
	staffRepo      interfaces.StaffRepository
	assignmentRepo interfaces.AssignmentRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	creatorRepo interfaces.CreatorRepository,
	staffRepo interfaces.StaffRepository,
	assignmentRepo interfaces.AssignmentRepository,
) interfaces.AssignmentService {
	return &assignmentService{
		creatorRepo:    creatorRepo,
		staffRepo:      staffRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Assign links an active editor to an active creator
func (s *assignmentService) Assign(ctx context.Context, editorDiscordID int64, creatorName string) error {
	editor, creator, err := s.resolvePair(ctx, editorDiscordID, creatorName)
	if err != nil {
		return err
	}

	exists, err := s.assignmentRepo.Exists(ctx, editor.ID, creator.ID)
	if err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if exists {
		return ErrAlreadyAssigned
	}

	if err := s.assignmentRepo.Create(ctx, editor.ID, creator.ID); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// Unassign removes the link between an editor and a creator
func (s *assignmentService) Unassign(ctx context.Context, editorDiscordID int64, creatorName string) error {
	editor, creator, err := s.resolvePair(ctx, editorDiscordID, creatorName)
	if err != nil {
		return err
	}

	deleted, err := s.assignmentRepo.Delete(ctx, editor.ID, creator.ID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if !deleted {
		return ErrNotAssigned
	}

	return nil
}

// CreatorsFor returns the active creators assigned to an editor
func (s *assignmentService) CreatorsFor(ctx context.Context, editorDiscordID int64) ([]*entities.Creator, error) {
	editor, err := s.activeEditor(ctx, editorDiscordID)
	if err != nil {
		return nil, err
	}

	creators, err := s.assignmentRepo.ListCreatorsForEditor(ctx, editor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators for editor: %w", err)
	}
	return creators, nil
}

// EditorsFor returns the active editors assigned to a creator
func (s *assignmentService) EditorsFor(ctx context.Context, creatorName string) ([]*entities.StaffMember, error) {
	creator, err := s.activeCreator(ctx, creatorName)
	if err != nil {
		return nil, err
	}

	editors, err := s.assignmentRepo.ListEditorsForCreator(ctx, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list editors for creator: %w", err)
	}
	return editors, nil
}

// IsAssigned reports whether an active editor is linked to a creator
func (s *assignmentService) IsAssigned(ctx context.Context, editorDiscordID, creatorID int64) (bool, error) {
	editor, err := s.staffRepo.GetActiveByDiscordID(ctx, entities.StaffKindEditor, editorDiscordID)
	if err != nil {
		return false, fmt.Errorf("failed to look up editor: %w", err)
	}
	if editor == nil {
		return false, nil
	}

	exists, err := s.assignmentRepo.Exists(ctx, editor.ID, creatorID)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}

func (s *assignmentService) resolvePair(ctx context.Context, editorDiscordID int64, creatorName string) (*entities.StaffMember, *entities.Creator, error) {
	editor, err := s.activeEditor(ctx, editorDiscordID)
	if err != nil {
		return nil, nil, err
	}
	creator, err := s.activeCreator(ctx, creatorName)
	if err != nil {
		return nil, nil, err
	}
	return editor, creator, nil
}

func (s *assignmentService) activeEditor(ctx context.Context, discordID int64) (*entities.StaffMember, error) {
	editor, err := s.staffRepo.GetActiveByDiscordID(ctx, entities.StaffKindEditor, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up editor: %w", err)
	}
	if editor == nil {
		return nil, &NotFoundError{Entity: EntityEditor}
	}
	return editor, nil
}

func (s *assignmentService) activeCreator(ctx context.Context, name string) (*entities.Creator, error) {
	creator, err := s.creatorRepo.GetActiveByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}
	if creator == nil {
		return nil, &NotFoundError{Entity: EntityCreator}
	}
	return creator, nil
}
