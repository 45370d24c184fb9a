package circle

import (
	"context"

	"circles-core/internal/domain/user"
)

// Repository defines the interface for circle persistence
type Repository interface {
	// Save persists a circle and its roster (create or update)
	Save(ctx context.Context, circle *Circle) error

	// FindByID retrieves a circle by its ID without locking it
	FindByID(ctx context.Context, id CircleID) (*Circle, error)

	// FindByIDForUpdate retrieves a circle by its ID. Implementations backed
	// by a transactional store lock the circle until the session ends.
	FindByIDForUpdate(ctx context.Context, id CircleID) (*Circle, error)

	// FindByName retrieves a circle by name
	FindByName(ctx context.Context, name CircleName) (*Circle, error)

	// FindByMember retrieves every circle whose roster contains id
	FindByMember(ctx context.Context, id user.UserID) ([]*Circle, error)

	// ExistsByOwner reports whether id owns at least one circle
	ExistsByOwner(ctx context.Context, id user.UserID) (bool, error)
}
