package ws

import (
	"context"
	"encoding/json"
	"huddle/internal/app/registry"
	"huddle/internal/core/domain"
	"huddle/internal/testutil"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type env struct {
	reg     *registry.Registry
	tracker *registry.Tracker
	rooms   *registry.Rooms
	deps    Deps
	log     *slog.Logger
}

func newEnv() env {
	log := slog.New(slog.DiscardHandler)
	e := env{
		reg:     registry.NewRegistry(),
		tracker: registry.NewTracker(),
		rooms:   registry.NewRooms(log),
		log:     log,
	}
	e.deps = Deps{Registry: e.reg, Tracker: e.tracker, Rooms: e.rooms}
	return e
}

func (e env) open(t *testing.T, userID string, groups []string) (*Session, *testutil.Client) {
	t.Helper()
	c := testutil.NewClient(userID)
	s := NewSession(e.log, e.deps, c, Handshake{UserID: userID, Groups: groups})
	s.Open(context.Background())
	return s, c
}

func command(t *testing.T, name domain.CommandName, groupID string) []byte {
	t.Helper()
	raw, err := json.Marshal(domain.Command{Name: name, GroupID: groupID})
	require.NoError(t, err)
	return raw
}

func ack(t *testing.T, c *testutil.Client) domain.AckPayload {
	t.Helper()
	frames := c.Events(string(domain.KindAck))
	require.NotEmpty(t, frames)
	var p domain.AckPayload
	require.NoError(t, json.Unmarshal(frames[len(frames)-1].Data, &p))
	return p
}

func lastError(t *testing.T, c *testutil.Client) domain.ErrorPayload {
	t.Helper()
	frames := c.Events(string(domain.KindError))
	require.NotEmpty(t, frames)
	var p domain.ErrorPayload
	require.NoError(t, json.Unmarshal(frames[len(frames)-1].Data, &p))
	return p
}

func TestParseHandshake(t *testing.T) {
	req := require.New(t)

	q := url.Values{}
	q.Set("userId", " u1 ")
	q.Set("groups", `["g2","g1"]`)
	req.Equal(Handshake{UserID: "u1", Groups: []string{"g1", "g2"}}, ParseHandshake(q, ""))

	q.Set("groups", "not json")
	req.Equal(Handshake{UserID: "u1", Groups: []string{}}, ParseHandshake(q, ""))

	req.Equal("token-user", ParseHandshake(q, "token-user").UserID)
	req.Equal("", ParseHandshake(url.Values{}, "").UserID)
}

func TestSession_OpenRegistersAndJoinsDeclaredGroups(t *testing.T) {
	req := require.New(t)

	// Given
	e := newEnv()

	// When
	s, c := e.open(t, "a", []string{"g1", "g2"})

	// Then
	req.Equal(StateActive, s.State())
	got, ok := e.reg.Lookup("a")
	req.True(ok)
	req.Equal(c.ID(), got.ID())
	req.Equal([]string{"g1", "g2"}, e.tracker.AllGroups("a"))
	req.True(e.rooms.Subscribed(domain.GroupRoom("g1"), c))
	req.True(e.rooms.Subscribed(domain.GroupRoom("g2"), c))
}

func TestSession_MalformedGroupsStillConnects(t *testing.T) {
	req := require.New(t)

	// Given
	e := newEnv()
	q := url.Values{"userId": {"a"}, "groups": {"[oops"}}

	// When
	c := testutil.NewClient("a")
	s := NewSession(e.log, e.deps, c, ParseHandshake(q, ""))
	s.Open(context.Background())

	// Then
	_, ok := e.reg.Lookup("a")
	req.True(ok)
	req.Empty(e.tracker.AllGroups("a"))
}

func TestSession_AnonymousIsAttachedButNotRegistered(t *testing.T) {
	req := require.New(t)

	// Given
	e := newEnv()

	// When
	s, c := e.open(t, "", []string{"g1"})
	e.rooms.BroadcastAll(context.Background(), []byte(`{"event":"presence-update","data":[]}`))

	// Then
	req.True(s.Anonymous())
	req.Empty(e.reg.Online())
	req.Len(c.Events("presence-update"), 1)

	// When
	s.Handle(context.Background(), command(t, domain.CommandRejoinGroups, ""))

	// Then
	req.Equal(domain.ErrCodeAnonymous, lastError(t, c).Code)
}

func TestSession_JoinLeaveAreIdempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	// Given
	e := newEnv()
	s, c := e.open(t, "a", nil)

	// When
	s.Handle(ctx, command(t, domain.CommandJoinGroup, "g1"))
	s.Handle(ctx, command(t, domain.CommandJoinGroup, "g1"))

	// Then
	req.Equal(domain.AckPayload{Command: domain.CommandJoinGroup, GroupID: "g1", Status: domain.AckOK}, ack(t, c))
	req.Equal(1, e.rooms.Size(domain.GroupRoom("g1")))
	req.Equal([]string{"g1"}, e.tracker.AllGroups("a"))

	// When
	s.Handle(ctx, command(t, domain.CommandLeaveGroup, "g1"))
	s.Handle(ctx, command(t, domain.CommandLeaveGroup, "g1"))

	// Then
	req.Equal(domain.CommandLeaveGroup, ack(t, c).Command)
	req.False(e.rooms.Subscribed(domain.GroupRoom("g1"), c))
	req.Empty(e.tracker.AllGroups("a"))
}

func TestSession_RejectsBadFrames(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	// Given
	e := newEnv()
	s, c := e.open(t, "a", nil)

	// When / Then
	s.Handle(ctx, []byte("{not json"))
	req.Equal(domain.ErrCodeBadFrame, lastError(t, c).Code)

	s.Handle(ctx, command(t, "dance", ""))
	req.Equal(domain.ErrCodeUnknownCommand, lastError(t, c).Code)

	s.Handle(ctx, command(t, domain.CommandJoinGroup, "  "))
	req.Equal(domain.ErrCodeBadGroup, lastError(t, c).Code)

	req.Equal(StateActive, s.State())
}

func TestSession_CloseKeepsIntentAndRejoinRestoresRooms(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	// Given
	e := newEnv()
	first, c1 := e.open(t, "a", []string{"g1"})
	first.Handle(ctx, command(t, domain.CommandJoinGroup, "g2"))

	// When
	first.Close(ctx)

	// Then
	req.Equal(StateClosed, first.State())
	req.True(c1.Closed())
	_, ok := e.reg.Lookup("a")
	req.False(ok)
	req.False(e.rooms.Subscribed(domain.GroupRoom("g1"), c1))
	req.Equal([]string{"g1", "g2"}, e.tracker.AllGroups("a"))

	// When a new connection declares nothing and asks to rejoin
	second := testutil.NewClient("a")
	s2 := NewSession(e.log, e.deps, second, Handshake{UserID: "a", Groups: []string{}})
	s2.Open(ctx)
	// SetInitialGroups replaced the intent with the empty declaration.
	req.Empty(e.tracker.AllGroups("a"))
	e.tracker.AddGroup("a", "g1")
	s2.Handle(ctx, command(t, domain.CommandRejoinGroups, ""))

	// Then
	req.Equal([]string{"g1"}, ack(t, second).Groups)
	req.True(e.rooms.Subscribed(domain.GroupRoom("g1"), second))
}

func TestSession_RejoinDoesNotReplay(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	// Given
	e := newEnv()
	s, c := e.open(t, "a", nil)
	e.tracker.AddGroup("a", "g1")
	e.rooms.Broadcast(ctx, domain.GroupRoom("g1"), []byte(`{"event":"new-group-message"}`))

	// When
	s.Handle(ctx, command(t, domain.CommandRejoinGroups, ""))

	// Then
	req.Empty(c.Events("new-group-message"))
	req.Equal(1, e.rooms.Broadcast(ctx, domain.GroupRoom("g1"), []byte(`{"event":"new-group-message"}`)))
	req.Len(c.Events("new-group-message"), 1)
}

func TestSession_CloseIsIdempotentAndIgnoresLateFrames(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	// Given
	e := newEnv()
	s, c := e.open(t, "a", nil)

	// When
	s.Close(ctx)
	s.Close(ctx)
	c.Reset()
	s.Handle(ctx, command(t, domain.CommandJoinGroup, "g1"))

	// Then
	req.Empty(c.Frames())
	req.Zero(e.rooms.Size(domain.GroupRoom("g1")))
}

type countingRefresher struct {
	mu    sync.Mutex
	users []string
}

func (r *countingRefresher) Refresh(_ context.Context, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
}

func (r *countingRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func TestSession_HeartbeatRefreshesUntilCancelled(t *testing.T) {
	req := require.New(t)

	// Given
	e := newEnv()
	ref := &countingRefresher{}
	e.deps.Presence = ref
	s := NewSession(e.log, e.deps, testutil.NewClient("a"), Handshake{UserID: "a"})
	ctx, cancel := context.WithCancel(context.Background())

	// When
	done := make(chan struct{})
	go func() {
		s.Heartbeat(ctx, 5*time.Millisecond)
		close(done)
	}()

	// Then
	req.Eventually(func() bool { return ref.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	req.Eventually(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
