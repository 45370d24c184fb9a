package user

import (
	"fmt"
	"time"

	"circles-core/internal/domain/events"
)

// User is a domain entity representing a member of the system
type User struct {
	events.Recorder

	id          UserID
	name        UserName
	mailAddress MailAddress
	premium     bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUser creates a User with an already generated id. Factories are the
// intended callers.
func NewUser(id UserID, name UserName, mailAddress MailAddress) (*User, error) {
	if id.IsZero() {
		return nil, ErrInvalidUserData("id", fmt.Errorf("user ID is required"))
	}
	if name == (UserName{}) {
		return nil, ErrInvalidUserData("name", fmt.Errorf("user name is required"))
	}
	if mailAddress == (MailAddress{}) {
		return nil, ErrInvalidUserData("mail address", fmt.Errorf("mail address is required"))
	}

	now := time.Now().UTC()
	u := &User{
		id:          id,
		name:        name,
		mailAddress: mailAddress,
		createdAt:   now,
		updatedAt:   now,
	}
	u.Record(NewUserRegisteredEvent(id.String(), name.String(), mailAddress.String()))
	return u, nil
}

// Reconstitute recreates a User entity from persistence
func Reconstitute(id, name, mailAddress string, premium bool, createdAt, updatedAt time.Time) (*User, error) {
	userID, err := NewUserID(id)
	if err != nil {
		return nil, err
	}

	nameVO, err := NewUserName(name)
	if err != nil {
		return nil, err
	}

	mailVO, err := NewMailAddress(mailAddress)
	if err != nil {
		return nil, err
	}

	return &User{
		id:          userID,
		name:        nameVO,
		mailAddress: mailVO,
		premium:     premium,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ChangeName renames the user
func (u *User) ChangeName(name string) error {
	nameVO, err := NewUserName(name)
	if err != nil {
		return err
	}

	u.name = nameVO
	u.touch()
	return nil
}

// ChangeMailAddress updates the user's mail address
func (u *User) ChangeMailAddress(address string) error {
	mailVO, err := NewMailAddress(address)
	if err != nil {
		return err
	}

	u.mailAddress = mailVO
	u.touch()
	return nil
}

// SetPremium grants or revokes premium status. It is a no-op when the status
// does not change.
func (u *User) SetPremium(premium bool) {
	if u.premium == premium {
		return
	}
	u.premium = premium
	u.touch()
	u.Record(NewPremiumChangedEvent(u.id.String(), premium))
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}

// Equals compares users by identity
func (u *User) Equals(other *User) bool {
	if other == nil {
		return false
	}
	return u.id.Equals(other.id)
}

// Getters

func (u *User) ID() UserID {
	return u.id
}

func (u *User) Name() UserName {
	return u.name
}

func (u *User) MailAddress() MailAddress {
	return u.mailAddress
}

func (u *User) IsPremium() bool {
	return u.premium
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// String returns string representation (for debugging)
func (u *User) String() string {
	return fmt.Sprintf("User{id: %s, name: %s, premium: %t}",
		u.id.String(), u.name.String(), u.premium)
}
