package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/splitkaro/backend/internal/metrics"
	"github.com/splitkaro/backend/internal/models"
	"github.com/splitkaro/backend/internal/notify"
	"github.com/splitkaro/backend/internal/storage"
)

// PhoneMember is an invitee named at group creation time, identified by
// phone number because they may not have an account yet.
type PhoneMember struct {
	PhoneNumber string
	DisplayName string
}

// InviteOutcome describes what happened to an invite.
type InviteOutcome string

const (
	// InviteMemberAdded means the phone number belonged to a registered
	// user who was added to the group directly.
	InviteMemberAdded InviteOutcome = "member_added"
	// InviteSMSSent means no account matched, so a provisional membership
	// was created and an SMS invite went out.
	InviteSMSSent InviteOutcome = "sms_sent"
)

// GroupService manages group lifecycle and membership.
type GroupService struct {
	store      storage.Store
	notifier   notify.Notifier
	logger     *slog.Logger
	inviteLink string
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store, notifier notify.Notifier, logger *slog.Logger, inviteLink string) *GroupService {
	return &GroupService{
		store:      store,
		notifier:   notifier,
		logger:     logger,
		inviteLink: inviteLink,
	}
}

// CreateGroup creates a group with the creator as admin. Each phone member
// is resolved against registered accounts: a match joins under their user
// ID, anyone else joins provisionally under their phone number.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID, name, description string, phoneMembers []PhoneMember) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	creator, err := s.store.GetUserByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}

	now := time.Now().Unix()
	members := map[string]models.Membership{
		creator.ID: {
			MemberID:    creator.ID,
			DisplayName: creator.DisplayName,
			PhoneNumber: creator.PhoneNumber,
			Role:        models.RoleAdmin,
			JoinedAt:    now,
		},
	}

	for _, pm := range phoneMembers {
		if pm.PhoneNumber == "" {
			return nil, fmt.Errorf("%w: member phone number is required", ErrInvalidInput)
		}
		membership := s.resolvePhoneMember(ctx, pm, now)
		if _, exists := members[membership.MemberID]; exists {
			continue
		}
		members[membership.MemberID] = membership
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		CreatedBy:   creator.ID,
		Members:     members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.logger.InfoContext(ctx, "group created",
		"group_id", group.ID,
		"created_by", creator.ID,
		"members", len(group.Members),
	)
	return group, nil
}

func (s *GroupService) resolvePhoneMember(ctx context.Context, pm PhoneMember, joinedAt int64) models.Membership {
	if user, err := s.store.GetUserByPhone(ctx, pm.PhoneNumber); err == nil {
		return models.Membership{
			MemberID:    user.ID,
			DisplayName: user.DisplayName,
			PhoneNumber: user.PhoneNumber,
			Role:        models.RoleMember,
			JoinedAt:    joinedAt,
		}
	}
	return models.Membership{
		MemberID:    pm.PhoneNumber,
		DisplayName: pm.DisplayName,
		PhoneNumber: pm.PhoneNumber,
		Role:        models.RoleMember,
		JoinedAt:    joinedAt,
	}
}

// GetGroup returns a group the viewer belongs to.
func (s *GroupService) GetGroup(ctx context.Context, viewerID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(viewerID) {
		return nil, ErrNotMember
	}
	return group, nil
}

// ListGroups returns all groups the user is a member of, newest first.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsForUser(ctx, userID)
}

// UpdateGroup renames or re-describes a group. Admin only.
func (s *GroupService) UpdateGroup(ctx context.Context, userID, groupID, name, description string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, ErrNotMember
	}
	if !group.IsAdmin(userID) {
		return nil, ErrNotAdmin
	}
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	group.Name = name
	group.Description = description
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

// DeleteGroup removes a group and all of its transactions. Admin only.
func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsMember(userID) {
		return ErrNotMember
	}
	if !group.IsAdmin(userID) {
		return ErrNotAdmin
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	s.logger.InfoContext(ctx, "group deleted", "group_id", groupID, "deleted_by", userID)
	return nil
}

// AddMembers adds phone-identified members to an existing group. Existing
// memberships are left untouched. Any group member may add others.
func (s *GroupService) AddMembers(ctx context.Context, userID, groupID string, phoneMembers []PhoneMember) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, ErrNotMember
	}

	now := time.Now().Unix()
	var additions []models.Membership
	for _, pm := range phoneMembers {
		if pm.PhoneNumber == "" {
			return nil, fmt.Errorf("%w: member phone number is required", ErrInvalidInput)
		}
		membership := s.resolvePhoneMember(ctx, pm, now)
		if group.IsMember(membership.MemberID) {
			continue
		}
		additions = append(additions, membership)
	}
	if len(additions) > 0 {
		if err := s.store.AddGroupMembers(ctx, groupID, additions); err != nil {
			return nil, fmt.Errorf("failed to add members: %w", err)
		}
	}

	return s.store.GetGroup(ctx, groupID)
}

// InviteMember invites a phone number into the group. If the number belongs
// to a registered user they are added directly; otherwise a provisional
// membership keyed by phone number is created and an SMS invite is sent.
func (s *GroupService) InviteMember(ctx context.Context, inviterID, groupID, phoneNumber, displayName string) (InviteOutcome, error) {
	if phoneNumber == "" {
		return "", fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return "", err
	}
	if !group.IsMember(inviterID) {
		return "", ErrNotMember
	}

	inviterName := group.Members[inviterID].DisplayName
	now := time.Now().Unix()

	user, err := s.store.GetUserByPhone(ctx, phoneNumber)
	switch {
	case err == nil:
		if group.IsMember(user.ID) {
			return "", ErrAlreadyMember
		}
		membership := models.Membership{
			MemberID:    user.ID,
			DisplayName: user.DisplayName,
			PhoneNumber: user.PhoneNumber,
			Role:        models.RoleMember,
			JoinedAt:    now,
		}
		if err := s.store.AddGroupMembers(ctx, groupID, []models.Membership{membership}); err != nil {
			return "", fmt.Errorf("failed to add member: %w", err)
		}
		metrics.RecordInvite(string(InviteMemberAdded))
		s.logger.InfoContext(ctx, "member added by invite",
			"group_id", groupID, "member_id", user.ID, "invited_by", inviterID)
		return InviteMemberAdded, nil

	case errors.Is(err, storage.ErrNotFound):
		if group.IsMember(phoneNumber) {
			return "", ErrAlreadyMember
		}
		membership := models.Membership{
			MemberID:    phoneNumber,
			DisplayName: displayName,
			PhoneNumber: phoneNumber,
			Role:        models.RoleMember,
			JoinedAt:    now,
		}
		if err := s.store.AddGroupMembers(ctx, groupID, []models.Membership{membership}); err != nil {
			return "", fmt.Errorf("failed to add member: %w", err)
		}
		if err := s.notifier.SendInvite(ctx, notify.Invite{
			PhoneNumber: phoneNumber,
			GroupName:   group.Name,
			InviterName: inviterName,
			JoinLink:    s.inviteLink,
		}); err != nil {
			// The membership is already in place; delivery failure is not
			// fatal to the invite.
			s.logger.WarnContext(ctx, "invite delivery failed",
				"group_id", groupID, "error", err)
		}
		metrics.RecordInvite(string(InviteSMSSent))
		return InviteSMSSent, nil

	default:
		return "", fmt.Errorf("failed to look up phone number: %w", err)
	}
}
