package circle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	minNameLength = 3
	maxNameLength = 20
)

// CircleID is a value object representing a circle's unique identifier
type CircleID struct {
	value string
}

// NewCircleID wraps an existing identifier
func NewCircleID(id string) (CircleID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CircleID{}, ErrInvalidCircleData("id", fmt.Errorf("circle ID cannot be empty"))
	}
	return CircleID{value: id}, nil
}

// GenerateCircleID creates a new random CircleID
func GenerateCircleID() CircleID {
	return CircleID{value: uuid.NewString()}
}

func (id CircleID) String() string {
	return id.value
}

func (id CircleID) Equals(other CircleID) bool {
	return id.value == other.value
}

func (id CircleID) IsZero() bool {
	return id.value == ""
}

// CircleName is a value object representing a circle's name.
// Two names are equal when their values are equal.
type CircleName struct {
	value string
}

// NewCircleName creates a new CircleName with validation
func NewCircleName(name string) (CircleName, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return CircleName{}, ErrInvalidCircleData("name", fmt.Errorf("circle name cannot be empty"))
	}

	n := utf8.RuneCountInString(name)
	if n < minNameLength {
		return CircleName{}, ErrInvalidCircleData("name", fmt.Errorf("circle name too short (min %d characters)", minNameLength))
	}
	if n > maxNameLength {
		return CircleName{}, ErrInvalidCircleData("name", fmt.Errorf("circle name too long (max %d characters)", maxNameLength))
	}

	return CircleName{value: name}, nil
}

func (n CircleName) String() string {
	return n.value
}

func (n CircleName) Equals(other CircleName) bool {
	return n.value == other.value
}
