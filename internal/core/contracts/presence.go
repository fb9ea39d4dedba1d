package contracts

import (
	"context"
	"time"
)

// PresenceStore mirrors local presence into a store shared by every instance.
type PresenceStore interface {
	// MarkOnline sets or refreshes the user's TTL based entry.
	MarkOnline(ctx context.Context, userID string, ttl time.Duration) error
	MarkOffline(ctx context.Context, userID string) error
	// OnlineUsers lists users seen within the TTL across all instances.
	OnlineUsers(ctx context.Context) ([]string, error)
}
