package contracts

import (
	"context"
)

// Client represents the minimal interface required by the registry and the
// rooms to communicate with an individual WebSocket connection.
type Client interface {
	// ID identifies the physical connection.
	ID() string
	// UserID is empty for anonymous connections.
	UserID() string
	Send(ctx context.Context, data []byte) error
	Close()
}

// ConnectionRegistry maps a user to the single connection this process
// knows for them. Last registration wins.
type ConnectionRegistry interface {
	Register(userID string, c Client)
	Unregister(userID string)
	Lookup(userID string) (Client, bool)
	Online() []string
}

// MembershipTracker records which groups a user expects to be subscribed to,
// so a fresh connection can restore them.
type MembershipTracker interface {
	SetInitialGroups(userID string, groupIDs []string) []string
	AddGroup(userID, groupID string)
	RemoveGroup(userID, groupID string)
	AllGroups(userID string) []string
}

// RoomBroker is the pub/sub room primitive. Membership is per connection and
// vanishes when the connection is detached.
type RoomBroker interface {
	Attach(c Client)
	Detach(c Client)
	Join(room string, c Client)
	Leave(room string, c Client)
	Broadcast(ctx context.Context, room string, data []byte) int
	BroadcastAll(ctx context.Context, data []byte) int
}
