package circle

import (
	"errors"

	"circles-core/internal/domain/user"
)

var errOwnerRequired = errors.New("owner is required")

// Factory creates new circles and owns ID generation
type Factory interface {
	Create(name CircleName, owner *user.User) (*Circle, error)
}

// UUIDFactory assigns random UUIDs
type UUIDFactory struct{}

func NewUUIDFactory() *UUIDFactory {
	return &UUIDFactory{}
}

func (f *UUIDFactory) Create(name CircleName, owner *user.User) (*Circle, error) {
	if owner == nil {
		return nil, ErrInvalidCircleData("owner", errOwnerRequired)
	}
	return New(GenerateCircleID(), name, owner.ID())
}
