package user

import (
	"context"
)

// Repository defines the interface for user persistence
// This is defined in the domain layer, but implemented in infrastructure
type Repository interface {
	// Save persists a user (create or update)
	Save(ctx context.Context, user *User) error

	// FindByID retrieves a user by their ID
	FindByID(ctx context.Context, id UserID) (*User, error)

	// FindByIDs retrieves every user whose ID is listed, in the order given.
	// Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []UserID) ([]*User, error)

	// FindByName retrieves a user by name
	FindByName(ctx context.Context, name UserName) (*User, error)

	// Delete removes a user from persistence
	Delete(ctx context.Context, id UserID) error
}
