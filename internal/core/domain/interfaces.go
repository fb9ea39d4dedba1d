//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../../mocks/mock_repositories.go -package=mocks
package domain

import "context"

// GroupRepository persists groups and their member lists.
type GroupRepository interface {
	CreateGroup(ctx context.Context, g *Group) error
	GetGroupByID(ctx context.Context, groupID string) (*Group, error)
	// LockGroup loads the group and holds its row lock until the caller's
	// transaction ends.
	LockGroup(ctx context.Context, groupID string) (*Group, error)
	ListGroupsByMember(ctx context.Context, userID string) ([]Group, error)
	UpdateGroup(ctx context.Context, g *Group) error
	// ReplaceMembers overwrites the member list of the group.
	ReplaceMembers(ctx context.Context, groupID string, memberIDs []string) error
	DeleteGroup(ctx context.Context, groupID string) error
}

// MessageRepository persists group and direct messages.
type MessageRepository interface {
	CreateGroupMessage(ctx context.Context, m *GroupMessage) (*GroupMessage, error)
	GetGroupMessage(ctx context.Context, messageID string) (*GroupMessage, error)
	ListGroupMessages(ctx context.Context, groupID string) ([]GroupMessage, error)
	DeleteGroupMessage(ctx context.Context, messageID string) error
	DeleteGroupMessages(ctx context.Context, groupID string) error

	CreateDirectMessage(ctx context.Context, m *DirectMessage) error
	GetDirectMessage(ctx context.Context, messageID string) (*DirectMessage, error)
	ListDirectMessages(ctx context.Context, userID, peerID string) ([]DirectMessage, error)
	DeleteDirectMessage(ctx context.Context, messageID string) error
}
