package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circles-core/internal/application/uow"
	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/shared"
	"circles-core/internal/domain/user"
)

func newUser(t *testing.T, id, name string, premium bool) *user.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := user.Reconstitute(id, name, id+"@example.com", premium, now, now)
	require.NoError(t, err)
	return u
}

func newCircle(t *testing.T, id, name, owner string, members ...string) *circle.Circle {
	t.Helper()
	now := time.Now().UTC()
	c, err := circle.Reconstitute(id, name, owner, members, now, now)
	require.NoError(t, err)
	return c
}

func seed(t *testing.T, st *Store, fn func(ctx context.Context, s uow.Session) error) {
	t.Helper()
	require.NoError(t, uow.Run(context.Background(), st, fn))
}

func TestStore_CommitPublishes(t *testing.T) {
	st := NewStore(nil)
	ctx := context.Background()

	seed(t, st, func(ctx context.Context, s uow.Session) error {
		return s.Users().Save(ctx, newUser(t, "u1", "alice", true))
	})

	s, err := st.Begin(ctx)
	require.NoError(t, err)
	defer s.Rollback(ctx)

	id, _ := user.NewUserID("u1")
	got, err := s.Users().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name().String())
	assert.True(t, got.IsPremium())
}

func TestStore_RollbackDiscards(t *testing.T) {
	st := NewStore(nil)
	ctx := context.Background()

	s, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Users().Save(ctx, newUser(t, "u1", "alice", false)))
	require.NoError(t, s.Rollback(ctx))

	assert.ErrorIs(t, s.Commit(ctx), errSessionClosed)
	assert.ErrorIs(t, s.Users().Save(ctx, newUser(t, "u2", "bob", false)), errSessionClosed)

	s2, err := st.Begin(ctx)
	require.NoError(t, err)
	defer s2.Rollback(ctx)

	id, _ := user.NewUserID("u1")
	_, err = s2.Users().FindByID(ctx, id)
	assert.True(t, shared.IsNotFound(err))
}

func TestStore_BeginWaitsForOpenSession(t *testing.T) {
	st := NewStore(nil)

	s, err := st.Begin(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = st.Begin(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, s.Commit(context.Background()))

	s2, err := st.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, s2.Rollback(context.Background()))
}

func TestUserRepository(t *testing.T) {
	st := NewStore(nil)
	ctx := context.Background()

	seed(t, st, func(ctx context.Context, s uow.Session) error {
		for _, u := range []*user.User{
			newUser(t, "u1", "alice", false),
			newUser(t, "u2", "bob", true),
			newUser(t, "u3", "carol", false),
		} {
			if err := s.Users().Save(ctx, u); err != nil {
				return err
			}
		}
		return nil
	})

	s, err := st.Begin(ctx)
	require.NoError(t, err)
	defer s.Rollback(ctx)
	repo := s.Users()

	t.Run("FindByIDs keeps order and skips unknown", func(t *testing.T) {
		ids := make([]user.UserID, 0, 4)
		for _, raw := range []string{"u3", "missing", "u1"} {
			id, _ := user.NewUserID(raw)
			ids = append(ids, id)
		}

		got, err := repo.FindByIDs(ctx, ids)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "u3", got[0].ID().String())
		assert.Equal(t, "u1", got[1].ID().String())
	})

	t.Run("FindByName", func(t *testing.T) {
		name, _ := user.NewUserName("bob")
		got, err := repo.FindByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "u2", got.ID().String())

		missing, _ := user.NewUserName("nobody")
		_, err = repo.FindByName(ctx, missing)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("Save rejects a taken name", func(t *testing.T) {
		err := repo.Save(ctx, newUser(t, "u9", "alice", false))
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("Delete missing user", func(t *testing.T) {
		id, _ := user.NewUserID("missing")
		assert.True(t, shared.IsNotFound(repo.Delete(ctx, id)))
	})
}

func TestCircleRepository(t *testing.T) {
	st := NewStore(nil)
	ctx := context.Background()

	seed(t, st, func(ctx context.Context, s uow.Session) error {
		for _, u := range []*user.User{
			newUser(t, "owner", "owner", false),
			newUser(t, "u1", "alice", false),
			newUser(t, "u2", "bob", true),
		} {
			if err := s.Users().Save(ctx, u); err != nil {
				return err
			}
		}
		return s.Circles().Save(ctx, newCircle(t, "c1", "gophers", "owner", "u1", "u2"))
	})

	s, err := st.Begin(ctx)
	require.NoError(t, err)
	defer s.Rollback(ctx)
	circles := s.Circles()

	t.Run("FindByID restores roster order", func(t *testing.T) {
		id, _ := circle.NewCircleID("c1")
		got, err := circles.FindByID(ctx, id)
		require.NoError(t, err)
		members := got.Members()
		require.Len(t, members, 2)
		assert.Equal(t, "u1", members[0].String())
		assert.Equal(t, "u2", members[1].String())
	})

	t.Run("FindByName", func(t *testing.T) {
		name, _ := circle.NewCircleName("gophers")
		got, err := circles.FindByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "c1", got.ID().String())

		missing, _ := circle.NewCircleName("rustaceans")
		_, err = circles.FindByName(ctx, missing)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("Save rejects unknown members", func(t *testing.T) {
		err := circles.Save(ctx, newCircle(t, "c2", "strangers", "owner", "ghost"))
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("Save rejects a taken name", func(t *testing.T) {
		err := circles.Save(ctx, newCircle(t, "c3", "gophers", "owner"))
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("FindByMember and ExistsByOwner", func(t *testing.T) {
		u2, _ := user.NewUserID("u2")
		got, err := circles.FindByMember(ctx, u2)
		require.NoError(t, err)
		require.Len(t, got, 1)

		owner, _ := user.NewUserID("owner")
		owns, err := circles.ExistsByOwner(ctx, owner)
		require.NoError(t, err)
		assert.True(t, owns)

		owns, err = circles.ExistsByOwner(ctx, u2)
		require.NoError(t, err)
		assert.False(t, owns)
	})

	t.Run("Delete removes the user from rosters", func(t *testing.T) {
		u1, _ := user.NewUserID("u1")
		require.NoError(t, s.Users().Delete(ctx, u1))

		id, _ := circle.NewCircleID("c1")
		got, err := circles.FindByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, got.IsMember(u1))
		assert.Equal(t, 1, got.CountMembers())
	})

	t.Run("Delete refuses a circle owner", func(t *testing.T) {
		owner, _ := user.NewUserID("owner")
		assert.True(t, shared.IsConflict(s.Users().Delete(ctx, owner)))
	})
}

func TestStore_ConcurrentJoinsRespectCapacity(t *testing.T) {
	st := NewStore(nil)
	ctx := context.Background()

	const applicants = 40
	seed(t, st, func(ctx context.Context, s uow.Session) error {
		if err := s.Users().Save(ctx, newUser(t, "owner", "owner", false)); err != nil {
			return err
		}
		for i := 0; i < applicants; i++ {
			id := fmt.Sprintf("a%02d", i)
			if err := s.Users().Save(ctx, newUser(t, id, "user-"+id, false)); err != nil {
				return err
			}
		}
		return s.Circles().Save(ctx, newCircle(t, "c1", "gophers", "owner"))
	})

	var wg sync.WaitGroup
	for i := 0; i < applicants; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = uow.Run(ctx, st, func(ctx context.Context, s uow.Session) error {
				cid, _ := circle.NewCircleID("c1")
				c, err := s.Circles().FindByIDForUpdate(ctx, cid)
				if err != nil {
					return err
				}
				uid, _ := user.NewUserID(id)
				u, err := s.Users().FindByID(ctx, uid)
				if err != nil {
					return err
				}
				if err := c.Join(ctx, u, circle.NewFullSpecification(s.Users())); err != nil {
					return err
				}
				return s.Circles().Save(ctx, c)
			})
		}(fmt.Sprintf("a%02d", i))
	}
	wg.Wait()

	s, err := st.Begin(ctx)
	require.NoError(t, err)
	defer s.Rollback(ctx)

	cid, _ := circle.NewCircleID("c1")
	c, err := s.Circles().FindByID(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, circle.BaseCapacity, c.CountMembers())
}
