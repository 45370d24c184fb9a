package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"circles-core/internal/application/uow"
	"circles-core/internal/database"
	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/user"
)

// querier is the subset of *sql.Tx the repositories use
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWork opens Postgres transactions as sessions
type UnitOfWork struct {
	db  *database.DB
	log *zap.Logger
}

// NewUnitOfWork creates a new Postgres unit of work
func NewUnitOfWork(db *database.DB, log *zap.Logger) *UnitOfWork {
	if log == nil {
		log = zap.NewNop()
	}
	return &UnitOfWork{db: db, log: log.Named("postgres-uow")}
}

// Begin starts a READ COMMITTED transaction
func (u *UnitOfWork) Begin(ctx context.Context) (uow.Session, error) {
	tx, err := u.db.GetConnection().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &session{
		tx:      tx,
		log:     u.log,
		users:   &UserRepositoryImpl{q: tx},
		circles: &CircleRepositoryImpl{q: tx},
	}, nil
}

type session struct {
	tx      *sql.Tx
	log     *zap.Logger
	users   *UserRepositoryImpl
	circles *CircleRepositoryImpl
}

func (s *session) Users() user.Repository     { return s.users }
func (s *session) Circles() circle.Repository { return s.circles }

func (s *session) Commit(_ context.Context) error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *session) Rollback(_ context.Context) error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.log.Warn("rollback failed", zap.Error(err))
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}
