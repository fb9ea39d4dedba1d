package services

import (
	"context"
	"huddle/internal/core/contracts"
	"huddle/internal/core/domain"
	"huddle/internal/mocks"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type messageDeps struct {
	groups   *mocks.MockGroupRepository
	messages *mocks.MockMessageRepository
	pub      *mocks.MockPublisher
	svc      *MessageService
}

func newMessageDeps(t *testing.T) messageDeps {
	ctrl := gomock.NewController(t)
	d := messageDeps{
		groups:   mocks.NewMockGroupRepository(ctrl),
		messages: mocks.NewMockMessageRepository(ctrl),
		pub:      mocks.NewMockPublisher(ctrl),
	}
	d.svc = NewMessageService(slog.New(slog.DiscardHandler), d.groups, d.messages, d.pub)
	return d
}

func TestMessageService_SendGroupMessage(t *testing.T) {
	t.Run("should publish to the room and to every other member", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)
		g := sampleGroup()

		d.groups.EXPECT().GetGroupByID(gomock.Any(), g.ID).Return(g, nil)
		d.messages.EXPECT().CreateGroupMessage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *domain.GroupMessage) (*domain.GroupMessage, error) {
				m.Sender.FullName = "User One"
				return m, nil
			})
		d.pub.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(domain.GroupMessageSent{}), contracts.Target{
			Room:  domain.GroupRoom(g.ID),
			Users: []string{"admin", "u2"},
		})

		msg, err := d.svc.SendGroupMessage(context.Background(), "u1", g.ID, SendMessageInput{Text: " hi "})

		req.NoError(err)
		req.Equal("hi", msg.Text)
		req.Equal("u1", msg.Sender.ID)
		req.Equal("User One", msg.Sender.FullName)
	})

	t.Run("should refuse non members", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)
		g := sampleGroup()

		d.groups.EXPECT().GetGroupByID(gomock.Any(), g.ID).Return(g, nil)
		d.messages.EXPECT().CreateGroupMessage(gomock.Any(), gomock.Any()).Times(0)

		_, err := d.svc.SendGroupMessage(context.Background(), "stranger", g.ID, SendMessageInput{Text: "hi"})

		req.ErrorIs(err, domain.ErrNotMember)
	})

	t.Run("should require text or image", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)

		_, err := d.svc.SendGroupMessage(context.Background(), "u1", "g", SendMessageInput{Text: "   "})

		req.ErrorIs(err, domain.ErrEmptyMessage)
	})

	t.Run("should accept an image only message", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)
		g := sampleGroup()

		d.groups.EXPECT().GetGroupByID(gomock.Any(), g.ID).Return(g, nil)
		d.messages.EXPECT().CreateGroupMessage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *domain.GroupMessage) (*domain.GroupMessage, error) { return m, nil })
		d.pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any())

		msg, err := d.svc.SendGroupMessage(context.Background(), "u1", g.ID, SendMessageInput{Image: "https://cdn.example.com/a.png"})

		req.NoError(err)
		req.Equal("https://cdn.example.com/a.png", msg.Image)
	})
}

func TestMessageService_GroupMessages(t *testing.T) {
	req := require.New(t)
	d := newMessageDeps(t)
	g := sampleGroup()

	d.groups.EXPECT().GetGroupByID(gomock.Any(), g.ID).Return(g, nil)
	d.messages.EXPECT().ListGroupMessages(gomock.Any(), g.ID).Return(nil, nil)

	msgs, err := d.svc.GroupMessages(context.Background(), "u2", g.ID)

	req.NoError(err)
	req.NotNil(msgs)
	req.Empty(msgs)
}

func TestMessageService_DeleteGroupMessage(t *testing.T) {
	t.Run("should let the sender delete and notify room and members", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)
		g := sampleGroup()
		m := domain.NewGroupMessage(g.ID, "u1", "hi", "")

		d.messages.EXPECT().GetGroupMessage(gomock.Any(), m.ID).Return(m, nil)
		d.groups.EXPECT().GetGroupByID(gomock.Any(), g.ID).Return(g, nil)
		d.messages.EXPECT().DeleteGroupMessage(gomock.Any(), m.ID).Return(nil)
		d.pub.EXPECT().Publish(gomock.Any(), domain.GroupMessageDeleted{MessageID: m.ID}, contracts.Target{
			Room:  domain.GroupRoom(g.ID),
			Users: g.MemberIDs,
		})

		req.NoError(d.svc.DeleteGroupMessage(context.Background(), "u1", m.ID))
	})

	t.Run("should refuse anyone but the sender", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)
		m := domain.NewGroupMessage("g", "u1", "hi", "")

		d.messages.EXPECT().GetGroupMessage(gomock.Any(), m.ID).Return(m, nil)
		d.messages.EXPECT().DeleteGroupMessage(gomock.Any(), gomock.Any()).Times(0)

		req.ErrorIs(d.svc.DeleteGroupMessage(context.Background(), "admin", m.ID), domain.ErrNotSender)
	})

	t.Run("should pass through not found", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)

		d.messages.EXPECT().GetGroupMessage(gomock.Any(), "nope").Return(nil, domain.ErrMessageNotFound)

		req.ErrorIs(d.svc.DeleteGroupMessage(context.Background(), "u1", "nope"), domain.ErrMessageNotFound)
	})
}

func TestMessageService_DirectMessages(t *testing.T) {
	t.Run("should deliver to both participants", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)

		d.messages.EXPECT().CreateDirectMessage(gomock.Any(), gomock.Any()).Return(nil)
		d.pub.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(domain.DirectMessageSent{}), contracts.Target{Users: []string{"a", "b"}})

		msg, err := d.svc.SendDirectMessage(context.Background(), "a", "b", SendMessageInput{Text: "yo"})

		req.NoError(err)
		req.Equal("b", msg.ReceiverID)
	})

	t.Run("should reject a missing receiver", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)

		_, err := d.svc.SendDirectMessage(context.Background(), "a", " ", SendMessageInput{Text: "yo"})

		req.ErrorIs(err, domain.ErrInvalidUserID)
	})

	t.Run("should list the conversation", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)
		want := []domain.DirectMessage{*domain.NewDirectMessage("a", "b", "1", ""), *domain.NewDirectMessage("b", "a", "2", "")}

		d.messages.EXPECT().ListDirectMessages(gomock.Any(), "a", "b").Return(want, nil)

		got, err := d.svc.Conversation(context.Background(), "a", "b")

		req.NoError(err)
		req.Equal(want, got)
	})

	t.Run("should let only the sender delete", func(t *testing.T) {
		req := require.New(t)
		d := newMessageDeps(t)
		m := domain.NewDirectMessage("a", "b", "1", "")

		d.messages.EXPECT().GetDirectMessage(gomock.Any(), m.ID).Return(m, nil).Times(2)
		d.messages.EXPECT().DeleteDirectMessage(gomock.Any(), m.ID).Return(nil)
		d.pub.EXPECT().Publish(gomock.Any(), domain.MessageDeleted{MessageID: m.ID}, contracts.Target{Users: []string{"a", "b"}})

		req.ErrorIs(d.svc.DeleteDirectMessage(context.Background(), "b", m.ID), domain.ErrNotSender)
		req.NoError(d.svc.DeleteDirectMessage(context.Background(), "a", m.ID))
	})
}
