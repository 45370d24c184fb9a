package user

import (
	"fmt"

	"circles-core/internal/domain/shared"
)

func ErrUserNotFound(id string) *shared.DomainError {
	return shared.NewNotFoundError("USER_NOT_FOUND", fmt.Sprintf("user %s not found", id))
}

func ErrUserAlreadyExists(name string) *shared.DomainError {
	return shared.NewConflictError("USER_ALREADY_EXISTS", fmt.Sprintf("user with name %s already exists", name))
}

func ErrUserOwnsCircle(id string) *shared.DomainError {
	return shared.NewConflictError("USER_OWNS_CIRCLE", fmt.Sprintf("user %s still owns a circle", id))
}

func ErrInvalidUserData(field string, err error) *shared.DomainError {
	return shared.NewValidationError("INVALID_USER_DATA", fmt.Sprintf("invalid %s", field), err)
}
