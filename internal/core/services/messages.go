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

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type SendMessageInput struct {
	Text  string `json:"text" validate:"max=4000"`
	Image string `json:"image" validate:"omitempty,url"`
}

func (in SendMessageInput) empty() bool {
	return strings.TrimSpace(in.Text) == "" && in.Image == ""
}

type MessageService struct {
	log       *slog.Logger
	groups    domain.GroupRepository
	messages  domain.MessageRepository
	publisher contracts.Publisher
}

func NewMessageService(
	log *slog.Logger,
	groups domain.GroupRepository,
	messages domain.MessageRepository,
	publisher contracts.Publisher,
) *MessageService {
	return &MessageService{
		log:       log,
		groups:    groups,
		messages:  messages,
		publisher: publisher,
	}
}

// SendGroupMessage stores a message and delivers it to the group room and,
// individually, to every other member.
func (s *MessageService) SendGroupMessage(ctx context.Context, senderID, groupID string, in SendMessageInput) (*domain.GroupMessage, error) {
	ctx, span := tracer.Start(ctx, "MessageService.SendGroupMessage", trace.WithAttributes(
		attribute.String("group_id", groupID),
		attribute.String("sender_id", senderID),
	))
	defer span.End()
	if in.empty() {
		return nil, fail(span, domain.ErrEmptyMessage)
	}
	if err := validateInput(in); err != nil {
		return nil, fail(span, err)
	}
	group, err := s.memberGroup(ctx, senderID, groupID)
	if err != nil {
		return nil, fail(span, err)
	}
	msg, err := s.messages.CreateGroupMessage(ctx, domain.NewGroupMessage(groupID, senderID, strings.TrimSpace(in.Text), in.Image))
	if err != nil {
		s.log.ErrorContext(ctx, "messages - send group message - insert failed", logging.Group(groupID), logging.Err(err))
		return nil, fail(span, fmt.Errorf("create group message: %w", err))
	}
	s.log.InfoContext(ctx, "messages - send group message - success", logging.Group(groupID), logging.Message(msg.ID))

	s.publisher.Publish(ctx, domain.GroupMessageSent{Message: *msg}, contracts.Target{
		Room:  domain.GroupRoom(groupID),
		Users: lo.Without(group.MemberIDs, senderID),
	})
	return msg, nil
}

// GroupMessages returns the history of a group, oldest first.
func (s *MessageService) GroupMessages(ctx context.Context, userID, groupID string) ([]domain.GroupMessage, error) {
	ctx, span := tracer.Start(ctx, "MessageService.GroupMessages", trace.WithAttributes(
		attribute.String("group_id", groupID),
	))
	defer span.End()
	if _, err := s.memberGroup(ctx, userID, groupID); err != nil {
		return nil, fail(span, err)
	}
	msgs, err := s.messages.ListGroupMessages(ctx, groupID)
	if err != nil {
		s.log.ErrorContext(ctx, "messages - group messages - list failed", logging.Group(groupID), logging.Err(err))
		return nil, fail(span, fmt.Errorf("list group messages: %w", err))
	}
	if msgs == nil {
		msgs = []domain.GroupMessage{}
	}
	return msgs, nil
}

// DeleteGroupMessage lets the sender remove their own message.
func (s *MessageService) DeleteGroupMessage(ctx context.Context, userID, messageID string) error {
	ctx, span := tracer.Start(ctx, "MessageService.DeleteGroupMessage", trace.WithAttributes(
		attribute.String("message_id", messageID),
	))
	defer span.End()
	msg, err := s.messages.GetGroupMessage(ctx, messageID)
	if err != nil {
		return fail(span, err)
	}
	if msg.SenderID != userID {
		return fail(span, domain.ErrNotSender)
	}
	group, err := s.groups.GetGroupByID(ctx, msg.GroupID)
	if err != nil {
		return fail(span, err)
	}
	if err := s.messages.DeleteGroupMessage(ctx, messageID); err != nil {
		s.log.ErrorContext(ctx, "messages - delete group message - delete failed", logging.Message(messageID), logging.Err(err))
		return fail(span, fmt.Errorf("delete group message: %w", err))
	}
	s.log.InfoContext(ctx, "messages - delete group message - success", logging.Message(messageID), logging.Group(group.ID))

	s.publisher.Publish(ctx, domain.GroupMessageDeleted{MessageID: messageID}, contracts.Target{
		Room:  domain.GroupRoom(group.ID),
		Users: group.MemberIDs,
	})
	return nil
}

// SendDirectMessage stores a one to one message and delivers it to both
// participants.
func (s *MessageService) SendDirectMessage(ctx context.Context, senderID, receiverID string, in SendMessageInput) (*domain.DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "MessageService.SendDirectMessage", trace.WithAttributes(
		attribute.String("sender_id", senderID),
		attribute.String("receiver_id", receiverID),
	))
	defer span.End()
	if strings.TrimSpace(senderID) == "" || strings.TrimSpace(receiverID) == "" {
		return nil, fail(span, domain.ErrInvalidUserID)
	}
	if in.empty() {
		return nil, fail(span, domain.ErrEmptyMessage)
	}
	if err := validateInput(in); err != nil {
		return nil, fail(span, err)
	}
	msg := domain.NewDirectMessage(senderID, receiverID, strings.TrimSpace(in.Text), in.Image)
	if err := s.messages.CreateDirectMessage(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "messages - send direct message - insert failed", logging.User(senderID), logging.Err(err))
		return nil, fail(span, fmt.Errorf("create direct message: %w", err))
	}
	s.log.InfoContext(ctx, "messages - send direct message - success", logging.Message(msg.ID))

	s.publisher.Publish(ctx, domain.DirectMessageSent{Message: *msg}, contracts.Target{Users: msg.Participants()})
	return msg, nil
}

// Conversation returns the messages exchanged between userID and peerID.
func (s *MessageService) Conversation(ctx context.Context, userID, peerID string) ([]domain.DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "MessageService.Conversation")
	defer span.End()
	if strings.TrimSpace(peerID) == "" {
		return nil, fail(span, domain.ErrInvalidUserID)
	}
	msgs, err := s.messages.ListDirectMessages(ctx, userID, peerID)
	if err != nil {
		s.log.ErrorContext(ctx, "messages - conversation - list failed", logging.User(userID), logging.Err(err))
		return nil, fail(span, fmt.Errorf("list direct messages: %w", err))
	}
	if msgs == nil {
		msgs = []domain.DirectMessage{}
	}
	return msgs, nil
}

func (s *MessageService) DeleteDirectMessage(ctx context.Context, userID, messageID string) error {
	ctx, span := tracer.Start(ctx, "MessageService.DeleteDirectMessage", trace.WithAttributes(
		attribute.String("message_id", messageID),
	))
	defer span.End()
	msg, err := s.messages.GetDirectMessage(ctx, messageID)
	if err != nil {
		return fail(span, err)
	}
	if msg.SenderID != userID {
		return fail(span, domain.ErrNotSender)
	}
	if err := s.messages.DeleteDirectMessage(ctx, messageID); err != nil {
		s.log.ErrorContext(ctx, "messages - delete direct message - delete failed", logging.Message(messageID), logging.Err(err))
		return fail(span, fmt.Errorf("delete direct message: %w", err))
	}
	s.log.InfoContext(ctx, "messages - delete direct message - success", logging.Message(messageID))

	s.publisher.Publish(ctx, domain.MessageDeleted{MessageID: messageID}, contracts.Target{Users: msg.Participants()})
	return nil
}

func (s *MessageService) memberGroup(ctx context.Context, userID, groupID string) (*domain.Group, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, domain.ErrInvalidGroupID
	}
	group, err := s.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load group: %w", err)
	}
	if !group.HasMember(userID) {
		return nil, domain.ErrNotMember
	}
	return group, nil
}
