package application

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"thumbnailbot/domain/entities"
	"thumbnailbot/domain/events"
	"thumbnailbot/domain/interfaces"
	"thumbnailbot/domain/services"

	log "github.com/sirupsen/logrus"
)

// MemberSnapshot is the part of a guild member roster sync looks at.
// LostRoleIDs holds roles the member was seen losing and Left marks a member
// who left the guild. Rows are only removed on one of those two signals.
type MemberSnapshot struct {
	UserID      int64
	DisplayName string
	RoleIDs     []int64
	LostRoleIDs []int64
	Left        bool
}

// RosterChange is one staff row touched by a sync
type RosterChange struct {
	UserID int64
	Kind   entities.StaffKind
	Action events.RosterAction
}

// SyncSummary counts the changes of a full guild sync
type SyncSummary struct {
	MembersScanned int
	Created        int
	Reactivated    int
}

// RosterSync keeps staff rosters in line with the configured Discord roles
type RosterSync struct {
	uowFactory UnitOfWorkFactory
}

// NewRosterSync creates a new roster sync
func NewRosterSync(uowFactory UnitOfWorkFactory) *RosterSync {
	return &RosterSync{
		uowFactory: uowFactory,
	}
}

// ApplyMember adds or reactivates the member for every configured role they
// hold and removes them from the rosters whose role they lost or, when they
// left the guild, from every roster. Guilds without a config are ignored.
func (r *RosterSync) ApplyMember(ctx context.Context, guildID int64, member MemberSnapshot) ([]RosterChange, error) {
	uow := r.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.GuildConfigRepository().GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if config == nil {
		return nil, nil
	}

	changes, err := applyMember(ctx, uow, guildID, config, member)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return changes, nil
}

// SyncGuild adds or reactivates every member holding a configured role in one
// transaction. A scan has no before state, so it never removes anyone.
func (r *RosterSync) SyncGuild(ctx context.Context, guildID int64, members []MemberSnapshot) (*SyncSummary, error) {
	uow := r.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.GuildConfigRepository().GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if config == nil {
		return nil, services.ErrConfigMissing
	}

	summary := &SyncSummary{}
	for _, member := range members {
		member.LostRoleIDs = nil
		member.Left = false
		changes, err := applyMember(ctx, uow, guildID, config, member)
		if err != nil {
			return nil, err
		}
		summary.MembersScanned++
		for _, change := range changes {
			switch change.Action {
			case events.RosterActionCreated:
				summary.Created++
			case events.RosterActionReactivated:
				summary.Reactivated++
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"guild":       guildID,
		"members":     summary.MembersScanned,
		"created":     summary.Created,
		"reactivated": summary.Reactivated,
	}).Info("Staff roster synced")

	return summary, nil
}

func applyMember(ctx context.Context, uow UnitOfWork, guildID int64, config *entities.GuildConfig, member MemberSnapshot) ([]RosterChange, error) {
	roster := services.NewRosterService(guildID, uow.CreatorRepository(), uow.StaffRepository(), uow.CategoryRepository(), uow.EventBus())

	var changes []RosterChange
	for _, kind := range entities.AllStaffKinds() {
		roleID := config.RoleIDFor(kind)
		if roleID == nil {
			continue
		}

		if slices.Contains(member.RoleIDs, *roleID) {
			_, result, err := roster.AddStaff(ctx, kind, member.UserID, member.DisplayName)
			var exists *services.AlreadyExistsError
			switch {
			case errors.As(err, &exists):
				if err := roster.RefreshDisplayName(ctx, kind, member.UserID, member.DisplayName); err != nil {
					return nil, err
				}
			case err != nil:
				return nil, err
			default:
				action := events.RosterActionCreated
				if result == interfaces.RosterReactivated {
					action = events.RosterActionReactivated
				}
				changes = append(changes, RosterChange{UserID: member.UserID, Kind: kind, Action: action})
			}
			continue
		}

		if !member.Left && !slices.Contains(member.LostRoleIDs, *roleID) {
			continue
		}

		err := roster.RemoveStaff(ctx, kind, member.UserID)
		if services.IsNotFound(err, "") {
			continue
		}
		if err != nil {
			return nil, err
		}
		changes = append(changes, RosterChange{UserID: member.UserID, Kind: kind, Action: events.RosterActionRemoved})
	}

	return changes, nil
}
