package registry

import (
	"context"
	"huddle/internal/core/contracts"
	"huddle/internal/core/domain"
	"huddle/pkg/logging"
	"log/slog"
	"time"
)

const (
	mirrorQueueSize = 1024
	storeTimeout    = 2 * time.Second
)

// Presence announces the online user list to every connection and mirrors
// each change into the shared presence store.
//
// Announce runs under the registry's presence lock, so store writes are
// queued and applied by Run in arrival order.
type Presence struct {
	log     *slog.Logger
	rooms   contracts.RoomBroker
	store   contracts.PresenceStore
	ttl     time.Duration
	mirrors chan PresenceChange
}

func NewPresence(log *slog.Logger, rooms contracts.RoomBroker, store contracts.PresenceStore, ttl time.Duration) *Presence {
	p := &Presence{log: log, rooms: rooms, store: store, ttl: ttl}
	switch store.(type) {
	case nil:
		p.store = NopPresenceStore{}
	case NopPresenceStore:
	default:
		p.mirrors = make(chan PresenceChange, mirrorQueueSize)
	}
	return p
}

// Announce is installed as the registry's presence hook.
func (p *Presence) Announce(ctx context.Context, change PresenceChange) {
	data, err := domain.EncodePresence(change.Users)
	if err != nil {
		p.log.ErrorContext(ctx, "presence - announce - encode failed", logging.Err(err))
		return
	}
	n := p.rooms.BroadcastAll(ctx, data)
	p.log.DebugContext(ctx, "presence - announce - broadcast", logging.User(change.UserID), "online", len(change.Users), "delivered", n)

	if p.mirrors == nil {
		return
	}
	select {
	case p.mirrors <- change:
	default:
		p.log.WarnContext(ctx, "presence - mirror - queue full, change dropped", logging.User(change.UserID), "online", change.Online)
	}
}

// Run applies queued presence changes to the shared store until ctx is done.
// It returns at once when presence is process-local.
func (p *Presence) Run(ctx context.Context) error {
	if p.mirrors == nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change := <-p.mirrors:
			p.mirror(ctx, change)
		}
	}
}

// Refresh extends the user's entry in the shared store.
func (p *Presence) Refresh(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := p.store.MarkOnline(ctx, userID, p.ttl); err != nil {
		p.log.WarnContext(ctx, "presence - refresh - store update failed", logging.User(userID), logging.Err(err))
	}
}

// Cluster lists online users across every instance sharing the store.
func (p *Presence) Cluster(ctx context.Context) ([]string, error) {
	return p.store.OnlineUsers(ctx)
}

func (p *Presence) mirror(ctx context.Context, change PresenceChange) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var err error
	if change.Online {
		err = p.store.MarkOnline(ctx, change.UserID, p.ttl)
	} else {
		err = p.store.MarkOffline(ctx, change.UserID)
	}
	if err != nil {
		p.log.WarnContext(ctx, "presence - mirror - store update failed", logging.User(change.UserID), "online", change.Online, logging.Err(err))
	}
}

// NopPresenceStore keeps presence process-local.
type NopPresenceStore struct {
	Registry contracts.ConnectionRegistry
}

func (NopPresenceStore) MarkOnline(context.Context, string, time.Duration) error { return nil }
func (NopPresenceStore) MarkOffline(context.Context, string) error                { return nil }

func (s NopPresenceStore) OnlineUsers(context.Context) ([]string, error) {
	if s.Registry == nil {
		return []string{}, nil
	}
	return s.Registry.Online(), nil
}
