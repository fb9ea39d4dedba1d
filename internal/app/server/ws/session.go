package ws

import (
	"context"
	"encoding/json"
	"huddle/internal/app/registry"
	"huddle/internal/core/contracts"
	"huddle/internal/core/domain"
	"huddle/pkg/logging"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"
)

// State of a session. Transitions only move forward.
type State int

const (
	StateHandshaking State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateHandshaking:
		return "handshaking"
	case StateActive:
		return "active"
	default:
		return "closed"
	}
}

// Handshake carries what the client declared when connecting.
type Handshake struct {
	UserID string
	Groups []string
}

// ParseHandshake reads userId and groups from the query. A non-empty
// authenticated id overrides the query's userId.
func ParseHandshake(q url.Values, authUserID string) Handshake {
	userID := strings.TrimSpace(q.Get("userId"))
	if authUserID != "" {
		userID = authUserID
	}
	return Handshake{
		UserID: userID,
		Groups: registry.ParseGroups(q.Get("groups")),
	}
}

// PresenceRefresher extends a user's presence in the shared store.
type PresenceRefresher interface {
	Refresh(ctx context.Context, userID string)
}

// Deps are the shared stores a session mutates.
type Deps struct {
	Registry contracts.ConnectionRegistry
	Tracker  contracts.MembershipTracker
	Rooms    contracts.RoomBroker
	Presence PresenceRefresher
}

type commandHandler func(ctx context.Context, cmd domain.Command)

// Session is the per-connection state machine: handshaking → active → closed.
// Inbound commands are routed through a dispatch table built once.
type Session struct {
	log      *slog.Logger
	deps     Deps
	client   contracts.Client
	userID   string
	groups   []string
	mu       sync.Mutex
	state    State
	handlers map[domain.CommandName]commandHandler
}

func NewSession(log *slog.Logger, deps Deps, client contracts.Client, hs Handshake) *Session {
	s := &Session{
		log:    log.With(logging.Conn(client.ID()), logging.User(hs.UserID)),
		deps:   deps,
		client: client,
		userID: hs.UserID,
		groups: hs.Groups,
		state:  StateHandshaking,
	}
	s.handlers = map[domain.CommandName]commandHandler{
		domain.CommandJoinGroup:    s.handleJoin,
		domain.CommandLeaveGroup:   s.handleLeave,
		domain.CommandRejoinGroups: s.handleRejoin,
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Anonymous() bool { return s.userID == "" }

// Open activates the session. Declared group rooms are joined before the
// user is registered, so the presence announcement finds them subscribed.
func (s *Session) Open(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateHandshaking {
		s.mu.Unlock()
		return
	}
	s.state = StateActive
	s.mu.Unlock()

	s.deps.Rooms.Attach(s.client)
	if s.Anonymous() {
		s.log.InfoContext(ctx, "ws session - open - anonymous connection")
		return
	}
	for _, groupID := range s.deps.Tracker.SetInitialGroups(s.userID, s.groups) {
		s.deps.Rooms.Join(domain.GroupRoom(groupID), s.client)
	}
	s.deps.Registry.Register(s.userID, s.client)
	s.log.InfoContext(ctx, "ws session - open - registered", "groups", len(s.groups))
}

// Close unregisters the user and drops every room membership. Tracked groups
// are kept so the next connection can rejoin them.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	prev := s.state
	s.state = StateClosed
	s.mu.Unlock()
	if prev == StateClosed {
		return
	}
	s.deps.Rooms.Detach(s.client)
	if prev == StateActive && !s.Anonymous() {
		s.deps.Registry.Unregister(s.userID)
	}
	s.client.Close()
	s.log.InfoContext(ctx, "ws session - close - unregistered")
}

// Handle decodes one inbound frame and dispatches it.
func (s *Session) Handle(ctx context.Context, raw []byte) {
	if s.State() != StateActive {
		return
	}
	var cmd domain.Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.reply(ctx, domain.KindError, domain.ErrorPayload{Code: domain.ErrCodeBadFrame, Message: "frame is not valid JSON"})
		return
	}
	h, ok := s.handlers[cmd.Name]
	if !ok {
		s.log.DebugContext(ctx, "ws session - handle - unknown command", logging.Command(string(cmd.Name)))
		s.reply(ctx, domain.KindError, domain.ErrorPayload{Code: domain.ErrCodeUnknownCommand, Message: "unknown command " + string(cmd.Name)})
		return
	}
	h(ctx, cmd)
}

// Join subscribes the connection to the group's room and records the intent.
func (s *Session) Join(groupID string) {
	s.deps.Rooms.Join(domain.GroupRoom(groupID), s.client)
	if !s.Anonymous() {
		s.deps.Tracker.AddGroup(s.userID, groupID)
	}
}

func (s *Session) Leave(groupID string) {
	s.deps.Rooms.Leave(domain.GroupRoom(groupID), s.client)
	if !s.Anonymous() {
		s.deps.Tracker.RemoveGroup(s.userID, groupID)
	}
}

// RejoinAll joins every tracked group. Events published before this call are
// not replayed.
func (s *Session) RejoinAll() []string {
	groups := s.deps.Tracker.AllGroups(s.userID)
	for _, groupID := range groups {
		s.deps.Rooms.Join(domain.GroupRoom(groupID), s.client)
	}
	return groups
}

// Heartbeat keeps the user's shared presence entry alive until ctx is done.
func (s *Session) Heartbeat(ctx context.Context, interval time.Duration) {
	if s.Anonymous() || s.deps.Presence == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.deps.Presence.Refresh(ctx, s.userID)
		}
	}
}

func (s *Session) handleJoin(ctx context.Context, cmd domain.Command) {
	groupID := strings.TrimSpace(cmd.GroupID)
	if groupID == "" {
		s.reply(ctx, domain.KindError, domain.ErrorPayload{Code: domain.ErrCodeBadGroup, Message: "groupId is required"})
		return
	}
	s.Join(groupID)
	s.log.DebugContext(ctx, "ws session - join group", logging.Group(groupID))
	s.reply(ctx, domain.KindAck, domain.AckPayload{Command: cmd.Name, GroupID: groupID, Status: domain.AckOK})
}

func (s *Session) handleLeave(ctx context.Context, cmd domain.Command) {
	groupID := strings.TrimSpace(cmd.GroupID)
	if groupID == "" {
		s.reply(ctx, domain.KindError, domain.ErrorPayload{Code: domain.ErrCodeBadGroup, Message: "groupId is required"})
		return
	}
	s.Leave(groupID)
	s.log.DebugContext(ctx, "ws session - leave group", logging.Group(groupID))
	s.reply(ctx, domain.KindAck, domain.AckPayload{Command: cmd.Name, GroupID: groupID, Status: domain.AckOK})
}

func (s *Session) handleRejoin(ctx context.Context, cmd domain.Command) {
	if s.Anonymous() {
		s.reply(ctx, domain.KindError, domain.ErrorPayload{Code: domain.ErrCodeAnonymous, Message: "rejoin needs a user id"})
		return
	}
	groups := s.RejoinAll()
	s.log.DebugContext(ctx, "ws session - rejoin groups", "groups", len(groups))
	s.reply(ctx, domain.KindAck, domain.AckPayload{Command: cmd.Name, Groups: groups, Status: domain.AckOK})
}

func (s *Session) reply(ctx context.Context, kind domain.EventKind, payload any) {
	data, err := json.Marshal(domain.NewFrame(kind, payload))
	if err != nil {
		s.log.ErrorContext(ctx, "ws session - reply - encode failed", logging.Err(err))
		return
	}
	if err := s.client.Send(ctx, data); err != nil {
		s.log.DebugContext(ctx, "ws session - reply - send failed", logging.Err(err))
	}
}
