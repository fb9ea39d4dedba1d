package registry

import (
	"context"
	"huddle/internal/core/contracts"
	"huddle/pkg/logging"
	"log/slog"
	"sync"
)

// Rooms is the in-process pub/sub primitive: named rooms of connections plus
// the set of every attached connection.
type Rooms struct {
	log      *slog.Logger
	mu       sync.RWMutex
	conns    map[string]contracts.Client            // conn_id → client
	rooms    map[string]map[string]contracts.Client // room → conn_id → client
	joinedBy map[string]set                         // conn_id → rooms
}

func NewRooms(log *slog.Logger) *Rooms {
	return &Rooms{
		log:      log,
		conns:    make(map[string]contracts.Client),
		rooms:    make(map[string]map[string]contracts.Client),
		joinedBy: make(map[string]set),
	}
}

func (r *Rooms) Attach(c contracts.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.ID()] = c
	if _, ok := r.joinedBy[c.ID()]; !ok {
		r.joinedBy[c.ID()] = make(set)
	}
}

// Detach forgets the connection and drops all of its room memberships.
func (r *Rooms) Detach(c contracts.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := c.ID()
	for room := range r.joinedBy[id] {
		r.leaveLocked(room, id)
	}
	delete(r.joinedBy, id)
	delete(r.conns, id)
}

// Join is idempotent. Joining does not require a prior Attach.
func (r *Rooms) Join(room string, c contracts.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := c.ID()
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]contracts.Client)
		r.rooms[room] = members
	}
	members[id] = c
	if _, ok := r.joinedBy[id]; !ok {
		r.joinedBy[id] = make(set)
	}
	r.joinedBy[id][room] = struct{}{}
}

// Leave is idempotent; leaving a room the connection is not in is a no-op.
func (r *Rooms) Leave(room string, c contracts.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(room, c.ID())
}

func (r *Rooms) leaveLocked(room, connID string) {
	if members, ok := r.rooms[room]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	if joined, ok := r.joinedBy[connID]; ok {
		delete(joined, room)
	}
}

func (r *Rooms) Subscribed(room string, c contracts.Client) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[room][c.ID()]
	return ok
}

// Size is the number of connections in the room.
func (r *Rooms) Size(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

// Broadcast hands data to every connection in the room and returns how many
// accepted it.
func (r *Rooms) Broadcast(ctx context.Context, room string, data []byte) int {
	r.mu.RLock()
	targets := make([]contracts.Client, 0, len(r.rooms[room]))
	for _, c := range r.rooms[room] {
		targets = append(targets, c)
	}
	r.mu.RUnlock()
	return r.deliver(ctx, targets, data, room)
}

// BroadcastAll hands data to every attached connection.
func (r *Rooms) BroadcastAll(ctx context.Context, data []byte) int {
	r.mu.RLock()
	targets := make([]contracts.Client, 0, len(r.conns))
	for _, c := range r.conns {
		targets = append(targets, c)
	}
	r.mu.RUnlock()
	return r.deliver(ctx, targets, data, "*")
}

func (r *Rooms) deliver(ctx context.Context, targets []contracts.Client, data []byte, room string) int {
	delivered := 0
	for _, c := range targets {
		if err := c.Send(ctx, data); err != nil {
			r.log.DebugContext(ctx, "rooms - broadcast - send failed", logging.Room(room), logging.Conn(c.ID()), logging.Err(err))
			continue
		}
		delivered++
	}
	return delivered
}
