package dto

import (
	"time"

	"circles-core/internal/domain/user"
)

// RegisterUserCommand represents a request to register a new user
type RegisterUserCommand struct {
	Name        string `json:"name" yaml:"name"`
	MailAddress string `json:"mail_address" yaml:"mail_address"`
}

// UpdateUserCommand represents a request to update a user. Nil fields are left unchanged.
type UpdateUserCommand struct {
	ID          string  `json:"id" yaml:"id"`
	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`
	MailAddress *string `json:"mail_address,omitempty" yaml:"mail_address,omitempty"`
}

// ChangePremiumCommand grants or revokes premium status
type ChangePremiumCommand struct {
	ID      string `json:"id" yaml:"id"`
	Premium bool   `json:"premium" yaml:"premium"`
}

// DeleteUserCommand represents a request to delete a user
type DeleteUserCommand struct {
	ID string `json:"id" yaml:"id"`
}

// UserData is the read model of a user handed to presentation
type UserData struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	MailAddress string    `json:"mail_address" yaml:"mail_address"`
	Premium     bool      `json:"premium" yaml:"premium"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewUserData builds the read model from the entity
func NewUserData(u *user.User) *UserData {
	return &UserData{
		ID:          u.ID().String(),
		Name:        u.Name().String(),
		MailAddress: u.MailAddress().String(),
		Premium:     u.IsPremium(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}
