package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	minNameLength = 3
	maxNameLength = 20
)

var (
	mailAddressRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// UserID is a value object representing a user's unique identifier
type UserID struct {
	value string
}

// NewUserID wraps an existing identifier
func NewUserID(id string) (UserID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return UserID{}, ErrInvalidUserData("id", fmt.Errorf("user ID cannot be empty"))
	}
	return UserID{value: id}, nil
}

// GenerateUserID creates a new random UserID
func GenerateUserID() UserID {
	return UserID{value: uuid.NewString()}
}

func (id UserID) String() string {
	return id.value
}

func (id UserID) Equals(other UserID) bool {
	return id.value == other.value
}

// IsZero reports whether the id was never set
func (id UserID) IsZero() bool {
	return id.value == ""
}

// UserName is a value object representing a user's display name
type UserName struct {
	value string
}

// NewUserName creates a new UserName with validation
func NewUserName(name string) (UserName, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return UserName{}, ErrInvalidUserData("name", fmt.Errorf("user name cannot be empty"))
	}

	n := utf8.RuneCountInString(name)
	if n < minNameLength {
		return UserName{}, ErrInvalidUserData("name", fmt.Errorf("user name too short (min %d characters)", minNameLength))
	}
	if n > maxNameLength {
		return UserName{}, ErrInvalidUserData("name", fmt.Errorf("user name too long (max %d characters)", maxNameLength))
	}

	return UserName{value: name}, nil
}

func (n UserName) String() string {
	return n.value
}

func (n UserName) Equals(other UserName) bool {
	return n.value == other.value
}

// MailAddress is a value object representing a valid mail address
type MailAddress struct {
	value string
}

// NewMailAddress creates a new MailAddress with validation
func NewMailAddress(address string) (MailAddress, error) {
	address = strings.TrimSpace(strings.ToLower(address))

	if address == "" {
		return MailAddress{}, ErrInvalidUserData("mail address", fmt.Errorf("mail address cannot be empty"))
	}

	if len(address) > 254 {
		return MailAddress{}, ErrInvalidUserData("mail address", fmt.Errorf("mail address too long (max 254 characters)"))
	}

	if !mailAddressRegex.MatchString(address) {
		return MailAddress{}, ErrInvalidUserData("mail address", fmt.Errorf("invalid mail address format"))
	}

	return MailAddress{value: address}, nil
}

func (m MailAddress) String() string {
	return m.value
}

func (m MailAddress) Equals(other MailAddress) bool {
	return m.value == other.value
}
