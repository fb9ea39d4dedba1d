package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"huddle/internal/core/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// newTestDB boots a throwaway Postgres, applies the migrations and returns a
// handle. The test is skipped when Docker is not reachable.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in short mode")
	}
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		tcpostgres.WithDatabase("huddle"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("pass"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://postgres:pass@%s:%s/huddle?sslmode=disable", host, port.Port())

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestPostgres(t *testing.T) {
	db := newTestDB(t)
	groups := NewGroupRepo(db)
	messages := NewMessageRepo(db)
	tx := NewTxManager(db)

	t.Run("group round trip keeps member order", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		// Given
		g := domain.NewGroup("team", "desc", "", "admin", []string{"admin", "u2", "u1", "u2"})

		// When
		req.NoError(groups.CreateGroup(ctx, g))
		got, err := groups.GetGroupByID(ctx, g.ID)

		// Then
		req.NoError(err)
		req.Equal("team", got.Name)
		req.Equal("admin", got.AdminID)
		req.Equal([]string{"admin", "u2", "u1"}, got.MemberIDs)

		listed, err := groups.ListGroupsByMember(ctx, "u1")
		req.NoError(err)
		req.Len(listed, 1)
		req.Equal(g.ID, listed[0].ID)
		req.Equal([]string{"admin", "u2", "u1"}, listed[0].MemberIDs)
	})

	t.Run("replace update and delete", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		g := domain.NewGroup("old", "", "", "admin", []string{"admin", "u1"})
		req.NoError(groups.CreateGroup(ctx, g))

		req.NoError(groups.ReplaceMembers(ctx, g.ID, []string{"admin", "u3"}))
		g.Name = "new"
		g.UpdatedAt = time.Now().UTC()
		req.NoError(groups.UpdateGroup(ctx, g))

		got, err := groups.GetGroupByID(ctx, g.ID)
		req.NoError(err)
		req.Equal("new", got.Name)
		req.Equal([]string{"admin", "u3"}, got.MemberIDs)

		req.NoError(groups.DeleteGroup(ctx, g.ID))
		_, err = groups.GetGroupByID(ctx, g.ID)
		req.ErrorIs(err, domain.ErrGroupNotFound)
		req.ErrorIs(groups.DeleteGroup(ctx, g.ID), domain.ErrGroupNotFound)
	})

	t.Run("invalid ids", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		_, err := groups.GetGroupByID(ctx, "not-a-uuid")
		req.ErrorIs(err, domain.ErrInvalidGroupID)
		_, err = messages.GetGroupMessage(ctx, "nope")
		req.ErrorIs(err, domain.ErrMessageNotFound)
	})

	t.Run("group messages carry sender profile in order", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		// Given
		_, err := db.ExecContext(ctx, `INSERT INTO users (id, full_name) VALUES ('u1', 'User One')`)
		req.NoError(err)
		g := domain.NewGroup("chat", "", "", "u1", []string{"u1", "u2"})
		req.NoError(groups.CreateGroup(ctx, g))

		// When
		first := domain.NewGroupMessage(g.ID, "u1", "first", "")
		second := domain.NewGroupMessage(g.ID, "u2", "second", "")
		second.CreatedAt = first.CreatedAt.Add(time.Second)
		saved, err := messages.CreateGroupMessage(ctx, first)
		req.NoError(err)
		_, err = messages.CreateGroupMessage(ctx, second)
		req.NoError(err)

		// Then
		req.Equal("User One", saved.Sender.FullName)
		list, err := messages.ListGroupMessages(ctx, g.ID)
		req.NoError(err)
		req.Len(list, 2)
		req.Equal("first", list[0].Text)
		req.Equal("second", list[1].Text)
		req.Equal("u2", list[1].Sender.ID)
		req.Empty(list[1].Sender.FullName)

		req.NoError(messages.DeleteGroupMessage(ctx, first.ID))
		req.ErrorIs(messages.DeleteGroupMessage(ctx, first.ID), domain.ErrMessageNotFound)
		req.NoError(messages.DeleteGroupMessages(ctx, g.ID))
		list, err = messages.ListGroupMessages(ctx, g.ID)
		req.NoError(err)
		req.Empty(list)
	})

	t.Run("direct conversation in both directions", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		a := domain.NewDirectMessage("a", "b", "hi", "")
		b := domain.NewDirectMessage("b", "a", "hello", "")
		b.CreatedAt = a.CreatedAt.Add(time.Second)
		other := domain.NewDirectMessage("a", "c", "elsewhere", "")
		for _, m := range []*domain.DirectMessage{a, b, other} {
			req.NoError(messages.CreateDirectMessage(ctx, m))
		}

		conv, err := messages.ListDirectMessages(ctx, "b", "a")
		req.NoError(err)
		req.Len(conv, 2)
		req.Equal(a.ID, conv[0].ID)
		req.Equal(b.ID, conv[1].ID)

		got, err := messages.GetDirectMessage(ctx, b.ID)
		req.NoError(err)
		req.Equal("hello", got.Text)
		req.NoError(messages.DeleteDirectMessage(ctx, b.ID))
		_, err = messages.GetDirectMessage(ctx, b.ID)
		req.ErrorIs(err, domain.ErrMessageNotFound)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		// Given
		g := domain.NewGroup("doomed", "", "", "admin", []string{"admin"})
		boom := errors.New("boom")

		// When
		err := tx.WithTx(ctx, func(ctx context.Context) error {
			if err := groups.CreateGroup(ctx, g); err != nil {
				return err
			}
			return tx.WithTx(ctx, func(context.Context) error { return boom })
		})

		// Then
		req.ErrorIs(err, boom)
		_, err = groups.GetGroupByID(ctx, g.ID)
		req.ErrorIs(err, domain.ErrGroupNotFound)
	})

	t.Run("transaction commits", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		g := domain.NewGroup("kept", "", "", "admin", []string{"admin"})
		req.NoError(tx.WithTx(ctx, func(ctx context.Context) error {
			if err := groups.CreateGroup(ctx, g); err != nil {
				return err
			}
			return groups.ReplaceMembers(ctx, g.ID, []string{"admin", "u9"})
		}))

		got, err := groups.GetGroupByID(ctx, g.ID)
		req.NoError(err)
		req.Equal([]string{"admin", "u9"}, got.MemberIDs)
	})

	t.Run("locked member edits do not lose updates", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()

		// Given
		g := domain.NewGroup("busy", "", "", "admin", []string{"admin"})
		req.NoError(groups.CreateGroup(ctx, g))
		joiners := []string{"j1", "j2", "j3", "j4", "j5"}

		// When
		var wg sync.WaitGroup
		errs := make(chan error, len(joiners))
		for _, id := range joiners {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- tx.WithTx(ctx, func(ctx context.Context) error {
					locked, err := groups.LockGroup(ctx, g.ID)
					if err != nil {
						return err
					}
					time.Sleep(20 * time.Millisecond)
					return groups.ReplaceMembers(ctx, g.ID, append(locked.MemberIDs, id))
				})
			}()
		}
		wg.Wait()
		close(errs)

		// Then
		for err := range errs {
			req.NoError(err)
		}
		got, err := groups.GetGroupByID(ctx, g.ID)
		req.NoError(err)
		req.ElementsMatch(append([]string{"admin"}, joiners...), got.MemberIDs)
	})
}
