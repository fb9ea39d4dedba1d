package registry

import (
	"context"
	"huddle/internal/core/contracts"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// PresenceChange describes one registry mutation and the online set right
// after it.
type PresenceChange struct {
	UserID string
	Online bool
	Users  []string
}

// Registry maps a user id to the one connection this process knows for them.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]contracts.Client // user_id → client

	announceMu sync.Mutex
	onChange   func(ctx context.Context, change PresenceChange)
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]contracts.Client),
	}
}

// OnPresenceChange installs the hook run after every Register/Unregister.
func (r *Registry) OnPresenceChange(fn func(ctx context.Context, change PresenceChange)) {
	r.announceMu.Lock()
	defer r.announceMu.Unlock()
	r.onChange = fn
}

// Register stores c for userID, replacing any previous connection. The
// replaced connection is left open and no longer reachable by user id.
func (r *Registry) Register(userID string, c contracts.Client) {
	r.mu.Lock()
	r.clients[userID] = c
	r.mu.Unlock()
	r.announce(PresenceChange{UserID: userID, Online: true})
}

// Unregister drops the user's entry. Absent users are a no-op for the map
// but still trigger an announcement.
func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	delete(r.clients, userID)
	r.mu.Unlock()
	r.announce(PresenceChange{UserID: userID, Online: false})
}

func (r *Registry) Lookup(userID string) (contracts.Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[userID]
	return c, ok
}

// Online returns the sorted ids of registered users.
func (r *Registry) Online() []string {
	r.mu.RLock()
	users := lo.Keys(r.clients)
	r.mu.RUnlock()
	slices.Sort(users)
	return users
}

// announce snapshots the online set under announceMu so that concurrent
// mutations are announced in an order where the last one is never stale.
func (r *Registry) announce(change PresenceChange) {
	r.announceMu.Lock()
	defer r.announceMu.Unlock()
	if r.onChange == nil {
		return
	}
	change.Users = r.Online()
	r.onChange(context.Background(), change)
}
