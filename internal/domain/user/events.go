package user

import (
	"circles-core/internal/domain/events"
)

// Event types
const (
	EventTypeUserRegistered     = "user.registered"
	EventTypeUserUpdated        = "user.updated"
	EventTypeUserPremiumChanged = "user.premium_changed"
	EventTypeUserDeleted        = "user.deleted"
)

// UserRegisteredEvent is raised when a new user is created
type UserRegisteredEvent struct {
	events.BaseEvent
	UserID      string
	Name        string
	MailAddress string
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(userID, name, mailAddress string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent:   events.NewBaseEvent(EventTypeUserRegistered, userID),
		UserID:      userID,
		Name:        name,
		MailAddress: mailAddress,
	}
}

// UserUpdatedEvent is raised when a user's name or mail address changes
type UserUpdatedEvent struct {
	events.BaseEvent
	UserID      string
	Name        string
	MailAddress string
}

// NewUserUpdatedEvent creates a new UserUpdatedEvent
func NewUserUpdatedEvent(userID, name, mailAddress string) *UserUpdatedEvent {
	return &UserUpdatedEvent{
		BaseEvent:   events.NewBaseEvent(EventTypeUserUpdated, userID),
		UserID:      userID,
		Name:        name,
		MailAddress: mailAddress,
	}
}

// PremiumChangedEvent is raised when premium status is granted or revoked
type PremiumChangedEvent struct {
	events.BaseEvent
	UserID  string
	Premium bool
}

// NewPremiumChangedEvent creates a new PremiumChangedEvent
func NewPremiumChangedEvent(userID string, premium bool) *PremiumChangedEvent {
	return &PremiumChangedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeUserPremiumChanged, userID),
		UserID:    userID,
		Premium:   premium,
	}
}

// UserDeletedEvent is raised when a user is deleted
type UserDeletedEvent struct {
	events.BaseEvent
	UserID string
}

// NewUserDeletedEvent creates a new UserDeletedEvent
func NewUserDeletedEvent(userID string) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeUserDeleted, userID),
		UserID:    userID,
	}
}
