package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"circles-core/internal/domain/user"
)

const userColumns = `id, name, mail_address, premium, created_at, updated_at`

// UserRepositoryImpl implements the domain user.Repository interface
type UserRepositoryImpl struct {
	q querier
}

// userRow is the users table data model, built from a User via Notify
type userRow struct {
	id, name, mail       string
	premium              bool
	createdAt, updatedAt time.Time
}

var _ user.Notification = (*userRow)(nil)

func (row *userRow) SetID(id user.UserID)              { row.id = id.String() }
func (row *userRow) SetName(name user.UserName)        { row.name = name.String() }
func (row *userRow) SetMailAddress(a user.MailAddress) { row.mail = a.String() }
func (row *userRow) SetPremium(premium bool)           { row.premium = premium }
func (row *userRow) SetTimestamps(created, updated time.Time) {
	row.createdAt, row.updatedAt = created, updated
}

// Save persists a user (create or update)
func (r *UserRepositoryImpl) Save(ctx context.Context, usr *user.User) error {
	var row userRow
	usr.Notify(&row)

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			mail_address = EXCLUDED.mail_address,
			premium = EXCLUDED.premium,
			updated_at = EXCLUDED.updated_at`,
		row.id,
		row.name,
		row.mail,
		row.premium,
		row.createdAt,
		row.updatedAt,
	)
	if err != nil {
		if _, ok := constraintViolation(err, codeUniqueViolation); ok {
			return user.ErrUserAlreadyExists(row.name)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by their ID
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id user.UserID) (*user.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.String())

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// FindByIDs retrieves users in the order of ids, skipping unknown ones
func (r *UserRepositoryImpl) FindByIDs(ctx context.Context, ids []user.UserID) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	rows, err := r.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*user.User, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		byID[u.ID().String()] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	out := make([]*user.User, 0, len(byID))
	for _, id := range raw {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// FindByName retrieves a user by name
func (r *UserRepositoryImpl) FindByName(ctx context.Context, name user.UserName) (*user.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1`, name.String())

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound(name.String())
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Delete removes a user. Memberships go with it; ownership blocks it.
func (r *UserRepositoryImpl) Delete(ctx context.Context, id user.UserID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id.String())
	if err != nil {
		if _, ok := constraintViolation(err, codeForeignKeyViolation); ok {
			return user.ErrUserOwnsCircle(id.String())
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return user.ErrUserNotFound(id.String())
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*user.User, error) {
	var (
		id, name, mail       string
		premium              bool
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(&id, &name, &mail, &premium, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return user.Reconstitute(id, name, mail, premium, createdAt, updatedAt)
}
