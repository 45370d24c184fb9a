// Package memory keeps users and circles in process memory with the same
// contracts as the Postgres repositories. Sessions are serialised: one
// session holds the store from Begin until Commit or Rollback.
package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"circles-core/internal/application/uow"
	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/user"
)

var errSessionClosed = errors.New("session already finished")

type userRecord struct {
	id        string
	name      string
	mail      string
	premium   bool
	createdAt time.Time
	updatedAt time.Time
}

type circleRecord struct {
	id        string
	name      string
	owner     string
	members   []string
	createdAt time.Time
	updatedAt time.Time
}

type snapshot struct {
	users   map[string]userRecord
	circles map[string]circleRecord
}

func (s snapshot) clone() snapshot {
	out := snapshot{
		users:   make(map[string]userRecord, len(s.users)),
		circles: make(map[string]circleRecord, len(s.circles)),
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.circles {
		v.members = append([]string(nil), v.members...)
		out.circles[k] = v
	}
	return out
}

// Store is an in-memory unit of work
type Store struct {
	sem  chan struct{}
	data snapshot
	log  *zap.Logger
}

// NewStore creates an empty store
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		sem: make(chan struct{}, 1),
		data: snapshot{
			users:   map[string]userRecord{},
			circles: map[string]circleRecord{},
		},
		log: log.Named("memory-store"),
	}
}

// Begin waits for exclusive access and opens a session over a private copy
func (st *Store) Begin(ctx context.Context) (uow.Session, error) {
	select {
	case st.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to acquire store: %w", ctx.Err())
	}

	s := &session{store: st, work: st.data.clone()}
	s.users = &userRepository{s: s}
	s.circles = &circleRepository{s: s}
	return s, nil
}

type session struct {
	store   *Store
	work    snapshot
	done    bool
	users   *userRepository
	circles *circleRepository
}

func (s *session) Users() user.Repository     { return s.users }
func (s *session) Circles() circle.Repository { return s.circles }

// Commit publishes the session's copy
func (s *session) Commit(_ context.Context) error {
	if s.done {
		return errSessionClosed
	}
	s.store.data = s.work
	s.finish()
	s.store.log.Debug("session committed",
		zap.Int("users", len(s.work.users)),
		zap.Int("circles", len(s.work.circles)))
	return nil
}

// Rollback discards the session's copy
func (s *session) Rollback(_ context.Context) error {
	if s.done {
		return errSessionClosed
	}
	s.finish()
	s.store.log.Debug("session rolled back")
	return nil
}

func (s *session) finish() {
	s.done = true
	<-s.store.sem
}

func (s *session) check() error {
	if s.done {
		return errSessionClosed
	}
	return nil
}
