package services

import (
	"context"
	"errors"
	"fmt"
	"huddle/internal/core/contracts"
	"huddle/internal/core/domain"
	"huddle/pkg/logging"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("huddle-services")

type CreateGroupInput struct {
	Name        string   `json:"name" validate:"max=100"`
	Description string   `json:"description" validate:"max=500"`
	GroupPic    string   `json:"groupPic" validate:"omitempty,url"`
	Members     []string `json:"members" validate:"dive,required"`
}

type UpdateGroupInput struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
	GroupPic    string `json:"groupPic" validate:"omitempty,url"`
}

type AddMembersInput struct {
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

type GroupService struct {
	log       *slog.Logger
	groups    domain.GroupRepository
	messages  domain.MessageRepository
	publisher contracts.Publisher
	tx        contracts.Transactor
}

func NewGroupService(
	log *slog.Logger,
	groups domain.GroupRepository,
	messages domain.MessageRepository,
	publisher contracts.Publisher,
	tx contracts.Transactor,
) *GroupService {
	return &GroupService{
		log:       log,
		groups:    groups,
		messages:  messages,
		publisher: publisher,
		tx:        tx,
	}
}

// CreateGroup stores a group administered by adminID, who is always a member,
// and tells every member about it.
func (s *GroupService) CreateGroup(ctx context.Context, adminID string, in CreateGroupInput) (*domain.Group, error) {
	ctx, span := tracer.Start(ctx, "GroupService.CreateGroup", trace.WithAttributes(
		attribute.String("user_id", adminID),
	))
	defer span.End()
	if adminID == "" {
		return nil, fail(span, domain.ErrInvalidUserID)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fail(span, domain.ErrGroupNameRequired)
	}
	if err := validateInput(in); err != nil {
		return nil, fail(span, err)
	}
	members := lo.Uniq(lo.Compact(append([]string{adminID}, in.Members...)))
	group := domain.NewGroup(strings.TrimSpace(in.Name), in.Description, in.GroupPic, adminID, members)
	if err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		return s.groups.CreateGroup(txCtx, group)
	}); err != nil {
		s.log.ErrorContext(ctx, "groups - create group - insert failed", logging.User(adminID), logging.Err(err))
		return nil, fail(span, fmt.Errorf("create group: %w", err))
	}
	span.SetAttributes(attribute.String("group_id", group.ID), attribute.Int("members", len(members)))
	s.log.InfoContext(ctx, "groups - create group - success", logging.Group(group.ID), "members", len(members))

	s.publisher.Publish(ctx, domain.GroupCreated{Group: *group}, contracts.Target{Users: members})
	return group, nil
}

// UserGroups lists the groups userID belongs to.
func (s *GroupService) UserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	ctx, span := tracer.Start(ctx, "GroupService.UserGroups")
	defer span.End()
	groups, err := s.groups.ListGroupsByMember(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "groups - user groups - list failed", logging.User(userID), logging.Err(err))
		return nil, fail(span, fmt.Errorf("list groups: %w", err))
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	return groups, nil
}

// Group returns one group, visible to members only.
func (s *GroupService) Group(ctx context.Context, userID, groupID string) (*domain.Group, error) {
	ctx, span := tracer.Start(ctx, "GroupService.Group", trace.WithAttributes(
		attribute.String("group_id", groupID),
	))
	defer span.End()
	group, err := s.load(ctx, groupID)
	if err != nil {
		return nil, fail(span, err)
	}
	if !group.HasMember(userID) {
		return nil, fail(span, domain.ErrNotMember)
	}
	return group, nil
}

// AddMembers lets the admin extend the member list. Listed users are told
// they were added.
func (s *GroupService) AddMembers(ctx context.Context, userID, groupID string, in AddMembersInput) (*domain.Group, error) {
	ctx, span := tracer.Start(ctx, "GroupService.AddMembers", trace.WithAttributes(
		attribute.String("group_id", groupID),
	))
	defer span.End()
	if err := validateInput(in); err != nil {
		return nil, fail(span, err)
	}
	added := lo.Uniq(in.Members)
	group, err := s.editMembers(ctx, groupID, func(g *domain.Group) error {
		if !g.IsAdmin(userID) {
			return domain.ErrNotAdmin
		}
		g.MemberIDs = lo.Uniq(append(g.MemberIDs, added...))
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}
	s.log.InfoContext(ctx, "groups - add members - success", logging.Group(groupID), "added", len(added))

	s.publisher.Publish(ctx, domain.AddedToGroup{Group: *group}, contracts.Target{Users: added})
	return group, nil
}

// RemoveMember removes memberID. The admin may remove anyone but themself;
// a member may remove only themself.
func (s *GroupService) RemoveMember(ctx context.Context, userID, groupID, memberID string) (*domain.Group, error) {
	ctx, span := tracer.Start(ctx, "GroupService.RemoveMember", trace.WithAttributes(
		attribute.String("group_id", groupID),
		attribute.String("member_id", memberID),
	))
	defer span.End()
	group, err := s.editMembers(ctx, groupID, func(g *domain.Group) error {
		if !g.IsAdmin(userID) && userID != memberID {
			return domain.ErrNotAuthorized
		}
		if g.IsAdmin(memberID) {
			return domain.ErrRemoveAdmin
		}
		g.MemberIDs = lo.Without(g.MemberIDs, memberID)
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}
	s.log.InfoContext(ctx, "groups - remove member - success", logging.Group(groupID), logging.User(memberID))

	ref := domain.GroupRef{GroupID: group.ID, GroupName: group.Name}
	s.publisher.Publish(ctx, domain.RemovedFromGroup{GroupRef: ref}, contracts.Target{Users: []string{memberID}})
	s.publisher.Publish(ctx, domain.MemberRemoved{MemberRef: domain.MemberRef{GroupID: group.ID, MemberID: memberID}},
		contracts.Target{Users: group.MemberIDs})
	return group, nil
}

// UpdateGroup lets the admin change name, description and picture. Blank
// fields keep their current value.
func (s *GroupService) UpdateGroup(ctx context.Context, userID, groupID string, in UpdateGroupInput) (*domain.Group, error) {
	ctx, span := tracer.Start(ctx, "GroupService.UpdateGroup", trace.WithAttributes(
		attribute.String("group_id", groupID),
	))
	defer span.End()
	if err := validateInput(in); err != nil {
		return nil, fail(span, err)
	}
	group, err := s.load(ctx, groupID)
	if err != nil {
		return nil, fail(span, err)
	}
	if !group.IsAdmin(userID) {
		return nil, fail(span, domain.ErrNotAdmin)
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		group.Name = name
	}
	if in.Description != "" {
		group.Description = in.Description
	}
	if in.GroupPic != "" {
		group.GroupPic = in.GroupPic
	}
	group.UpdatedAt = time.Now().UTC()
	if err := s.groups.UpdateGroup(ctx, group); err != nil {
		s.log.ErrorContext(ctx, "groups - update group - update failed", logging.Group(groupID), logging.Err(err))
		return nil, fail(span, fmt.Errorf("update group: %w", err))
	}
	s.log.InfoContext(ctx, "groups - update group - success", logging.Group(groupID))

	s.publisher.Publish(ctx, domain.GroupUpdated{Group: *group}, contracts.Target{Users: group.MemberIDs})
	return group, nil
}

// DeleteGroup removes the group and its messages in one transaction.
func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	ctx, span := tracer.Start(ctx, "GroupService.DeleteGroup", trace.WithAttributes(
		attribute.String("group_id", groupID),
	))
	defer span.End()
	group, err := s.load(ctx, groupID)
	if err != nil {
		return fail(span, err)
	}
	if !group.IsAdmin(userID) {
		return fail(span, domain.ErrNotAdmin)
	}
	if err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.messages.DeleteGroupMessages(txCtx, groupID); err != nil {
			return err
		}
		return s.groups.DeleteGroup(txCtx, groupID)
	}); err != nil {
		s.log.ErrorContext(ctx, "groups - delete group - transaction failed", logging.Group(groupID), logging.Err(err))
		return fail(span, fmt.Errorf("delete group: %w", err))
	}
	s.log.InfoContext(ctx, "groups - delete group - success", logging.Group(groupID))

	s.publisher.Publish(ctx, domain.GroupDeleted{GroupRef: domain.GroupRef{GroupID: group.ID, GroupName: group.Name}},
		contracts.Target{Users: group.MemberIDs})
	return nil
}

// editMembers locks the group row, lets edit check the caller and change the
// member list, and stores the result before the lock is released.
func (s *GroupService) editMembers(ctx context.Context, groupID string, edit func(g *domain.Group) error) (*domain.Group, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, domain.ErrInvalidGroupID
	}
	var group *domain.Group
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		g, err := s.groups.LockGroup(txCtx, groupID)
		if err != nil {
			if errors.Is(err, domain.ErrGroupNotFound) || errors.Is(err, domain.ErrInvalidGroupID) {
				return err
			}
			return fmt.Errorf("lock group: %w", err)
		}
		if err := edit(g); err != nil {
			return err
		}
		if err := s.groups.ReplaceMembers(txCtx, groupID, g.MemberIDs); err != nil {
			s.log.ErrorContext(ctx, "groups - edit members - replace failed", logging.Group(groupID), logging.Err(err))
			return fmt.Errorf("replace members: %w", err)
		}
		group = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	group.UpdatedAt = time.Now().UTC()
	return group, nil
}

func (s *GroupService) load(ctx context.Context, groupID string) (*domain.Group, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, domain.ErrInvalidGroupID
	}
	group, err := s.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) || errors.Is(err, domain.ErrInvalidGroupID) {
			return nil, err
		}
		return nil, fmt.Errorf("load group: %w", err)
	}
	return group, nil
}

// fail records err on the span and returns it.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
