// Package uow defines the transactional boundary application services run in.
//
// A Session is passed explicitly to the code that needs it; there is no
// ambient or global transaction.
package uow

import (
	"context"
	"errors"
	"fmt"

	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/user"
)

// Session groups the repositories that share one transaction
type Session interface {
	Users() user.Repository
	Circles() circle.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWork opens sessions
type UnitOfWork interface {
	Begin(ctx context.Context) (Session, error)
}

// Run opens a session, runs fn inside it and commits. Any error from fn or a
// panic rolls the session back; the rollback error, if any, is joined to the
// original failure.
func Run(ctx context.Context, u UnitOfWork, fn func(ctx context.Context, s Session) error) (err error) {
	s, err := u.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx, s); err != nil {
		if rbErr := s.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back: %w", rbErr))
		}
		return err
	}

	if err := s.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return nil
}
