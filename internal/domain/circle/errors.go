package circle

import (
	"fmt"

	"circles-core/internal/domain/shared"
)

func ErrCircleNotFound(id string) *shared.DomainError {
	return shared.NewNotFoundError("CIRCLE_NOT_FOUND", fmt.Sprintf("circle %s not found", id))
}

func ErrCircleAlreadyExists(name string) *shared.DomainError {
	return shared.NewConflictError("CIRCLE_ALREADY_EXISTS", fmt.Sprintf("circle with name %s already exists", name))
}

func ErrInvalidCircleData(field string, err error) *shared.DomainError {
	return shared.NewValidationError("INVALID_CIRCLE_DATA", fmt.Sprintf("invalid %s", field), err)
}

func ErrMemberRequired() *shared.DomainError {
	return shared.NewValidationError("MEMBER_REQUIRED", "member is required", nil)
}

func ErrAlreadyMember(userID string) *shared.DomainError {
	return shared.NewValidationError("ALREADY_MEMBER", fmt.Sprintf("user %s already belongs to the circle", userID), nil)
}

func ErrCircleFull(id string) *shared.DomainError {
	return shared.NewCapacityError("CIRCLE_FULL", fmt.Sprintf("circle %s has reached its member limit", id))
}
