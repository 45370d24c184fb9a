package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"circles-core/internal/application/dto"
	"circles-core/internal/application/service"
	"circles-core/internal/application/uow"
	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/events"
	"circles-core/internal/domain/user"
	"circles-core/internal/infrastructure/cache"
	"circles-core/internal/infrastructure/persistence/memory"
)

type fixture struct {
	work    *hookedStore
	cache   *cache.UserCache
	users   *service.UserService
	circles *service.CircleService
	events  *eventLog
	seq     int
}

type eventLog struct {
	mu    sync.Mutex
	types []string
}

func (l *eventLog) handle(_ context.Context, e events.DomainEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.types = append(l.types, e.EventType())
	return nil
}

func (l *eventLog) seen() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.types...)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := &eventLog{}
	d := events.NewDispatcher(nil)
	for _, typ := range []string{
		user.EventTypeUserRegistered,
		user.EventTypeUserUpdated,
		user.EventTypeUserPremiumChanged,
		user.EventTypeUserDeleted,
		circle.EventTypeCircleCreated,
		circle.EventTypeMemberJoined,
	} {
		d.Register(typ, log.handle)
	}

	work := &hookedStore{Store: memory.NewStore(nil)}
	c := cache.NewUserCache(time.Minute)
	return &fixture{
		work:    work,
		cache:   c,
		users:   service.NewUserService(work, user.NewSequenceFactory(), c, d, nil),
		circles: service.NewCircleService(work, circle.NewUUIDFactory(), d, nil),
		events:  log,
	}
}

func (f *fixture) register(t *testing.T, name string, premium bool) *dto.UserData {
	t.Helper()
	ctx := context.Background()

	u, err := f.users.Register(ctx, dto.RegisterUserCommand{Name: name, MailAddress: name + "@example.com"})
	require.NoError(t, err)
	if premium {
		u, err = f.users.ChangePremium(ctx, dto.ChangePremiumCommand{ID: u.ID, Premium: true})
		require.NoError(t, err)
	}
	return u
}

// populate registers count users, the first premium of them premium, and joins them to circleID
func (f *fixture) populate(t *testing.T, circleID string, count, premium int) []*dto.UserData {
	t.Helper()
	out := make([]*dto.UserData, 0, count)
	for i := 0; i < count; i++ {
		f.seq++
		u := f.register(t, fmt.Sprintf("member%03d", f.seq), i < premium)
		_, err := f.circles.Join(context.Background(), dto.JoinCircleCommand{CircleID: circleID, UserID: u.ID})
		require.NoError(t, err, "join %d", i)
		out = append(out, u)
	}
	return out
}

// hookedStore wraps the memory store so tests can act between a command's
// commit and whatever the service does next, and can see which circle loads
// asked for a lock.
type hookedStore struct {
	*memory.Store

	mu          sync.Mutex
	afterCommit func()
	lockedLoads int
}

// onNextCommit runs fn once, right after the next session commits
func (h *hookedStore) onNextCommit(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.afterCommit = fn
}

func (h *hookedStore) takeAfterCommit() func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn := h.afterCommit
	h.afterCommit = nil
	return fn
}

func (h *hookedStore) locked() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lockedLoads
}

func (h *hookedStore) Begin(ctx context.Context) (uow.Session, error) {
	s, err := h.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &hookedSession{Session: s, store: h}, nil
}

type hookedSession struct {
	uow.Session
	store *hookedStore
}

func (s *hookedSession) Circles() circle.Repository {
	return &lockCountingCircles{Repository: s.Session.Circles(), store: s.store}
}

func (s *hookedSession) Commit(ctx context.Context) error {
	if err := s.Session.Commit(ctx); err != nil {
		return err
	}
	if fn := s.store.takeAfterCommit(); fn != nil {
		fn()
	}
	return nil
}

type lockCountingCircles struct {
	circle.Repository
	store *hookedStore
}

func (r *lockCountingCircles) FindByIDForUpdate(ctx context.Context, id circle.CircleID) (*circle.Circle, error) {
	r.store.mu.Lock()
	r.store.lockedLoads++
	r.store.mu.Unlock()
	return r.Repository.FindByIDForUpdate(ctx, id)
}
