package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/user"
)

const circleColumns = `c.id, c.name, c.owner_id, c.created_at, c.updated_at`

const circleWithMembers = `SELECT ` + circleColumns + `,
	ARRAY(SELECT m.user_id FROM circle_members m WHERE m.circle_id = c.id ORDER BY m.position)
	FROM circles c`

// CircleRepositoryImpl implements the domain circle.Repository interface
type CircleRepositoryImpl struct {
	q querier
}

// Save persists the circle row and reconciles its roster
func (r *CircleRepositoryImpl) Save(ctx context.Context, c *circle.Circle) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO circles (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at`,
		c.ID().String(),
		c.Name().String(),
		c.Owner().String(),
		c.CreatedAt(),
		c.UpdatedAt(),
	)
	if err != nil {
		return r.mapWriteError(err, c)
	}

	members := make([]string, 0, c.CountMembers())
	for _, m := range c.Members() {
		members = append(members, m.String())
	}

	_, err = r.q.ExecContext(ctx,
		`DELETE FROM circle_members WHERE circle_id = $1 AND NOT (user_id = ANY($2))`,
		c.ID().String(), pq.Array(members),
	)
	if err != nil {
		return fmt.Errorf("failed to prune circle members: %w", err)
	}

	if len(members) == 0 {
		return nil
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO circle_members (circle_id, user_id, position)
		SELECT $1, m.user_id, m.position
		FROM unnest($2::text[]) WITH ORDINALITY AS m(user_id, position)
		ON CONFLICT (circle_id, user_id) DO UPDATE SET position = EXCLUDED.position`,
		c.ID().String(), pq.Array(members),
	)
	if err != nil {
		return r.mapWriteError(err, c)
	}

	return nil
}

func (r *CircleRepositoryImpl) mapWriteError(err error, c *circle.Circle) error {
	if _, ok := constraintViolation(err, codeUniqueViolation); ok {
		return circle.ErrCircleAlreadyExists(c.Name().String())
	}
	if constraint, ok := constraintViolation(err, codeForeignKeyViolation); ok {
		if constraint == "circles_owner_id_fkey" {
			return user.ErrUserNotFound(c.Owner().String())
		}
		return user.ErrUserNotFound(fmt.Sprintf("member of circle %s", c.ID().String()))
	}
	return fmt.Errorf("failed to save circle: %w", err)
}

// FindByID retrieves a circle and its roster without taking a row lock
func (r *CircleRepositoryImpl) FindByID(ctx context.Context, id circle.CircleID) (*circle.Circle, error) {
	row := r.q.QueryRowContext(ctx, circleWithMembers+` WHERE c.id = $1`, id.String())

	c, err := scanCircle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, circle.ErrCircleNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}
	return c, nil
}

// FindByIDForUpdate locks the circle row for the rest of the transaction and
// loads its roster with a separate statement, so a join that waited on the
// lock reads the roster committed by the previous holder.
func (r *CircleRepositoryImpl) FindByIDForUpdate(ctx context.Context, id circle.CircleID) (*circle.Circle, error) {
	var (
		cid, name, owner     string
		createdAt, updatedAt time.Time
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT `+circleColumns+` FROM circles c WHERE c.id = $1 FOR UPDATE`, id.String(),
	).Scan(&cid, &name, &owner, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, circle.ErrCircleNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}

	var members pq.StringArray
	err = r.q.QueryRowContext(ctx,
		`SELECT ARRAY(SELECT user_id FROM circle_members WHERE circle_id = $1 ORDER BY position)`, cid,
	).Scan(&members)
	if err != nil {
		return nil, fmt.Errorf("failed to get circle members: %w", err)
	}

	return circle.Reconstitute(cid, name, owner, members, createdAt, updatedAt)
}

// FindByName retrieves a circle by name
func (r *CircleRepositoryImpl) FindByName(ctx context.Context, name circle.CircleName) (*circle.Circle, error) {
	row := r.q.QueryRowContext(ctx, circleWithMembers+` WHERE c.name = $1`, name.String())

	c, err := scanCircle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, circle.ErrCircleNotFound(name.String())
		}
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}
	return c, nil
}

// FindByMember retrieves every circle whose roster contains id, oldest first
func (r *CircleRepositoryImpl) FindByMember(ctx context.Context, id user.UserID) ([]*circle.Circle, error) {
	rows, err := r.q.QueryContext(ctx, circleWithMembers+`
		WHERE EXISTS (SELECT 1 FROM circle_members m WHERE m.circle_id = c.id AND m.user_id = $1)
		ORDER BY c.created_at`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list circles: %w", err)
	}
	defer rows.Close()

	var out []*circle.Circle
	for rows.Next() {
		c, err := scanCircle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan circle: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate circles: %w", err)
	}
	return out, nil
}

// ExistsByOwner reports whether id owns at least one circle
func (r *CircleRepositoryImpl) ExistsByOwner(ctx context.Context, id user.UserID) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM circles WHERE owner_id = $1)`, id.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check circle ownership: %w", err)
	}
	return exists, nil
}

func scanCircle(s scanner) (*circle.Circle, error) {
	var (
		id, name, owner      string
		createdAt, updatedAt time.Time
		members              pq.StringArray
	)
	if err := s.Scan(&id, &name, &owner, &createdAt, &updatedAt, &members); err != nil {
		return nil, err
	}
	return circle.Reconstitute(id, name, owner, members, createdAt, updatedAt)
}
