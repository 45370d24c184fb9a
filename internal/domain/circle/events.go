package circle

import (
	"circles-core/internal/domain/events"
)

// Event types
const (
	EventTypeCircleCreated = "circle.created"
	EventTypeMemberJoined  = "circle.member_joined"
)

// CircleCreatedEvent is raised when a circle is created
type CircleCreatedEvent struct {
	events.BaseEvent
	CircleID string
	Name     string
	OwnerID  string
}

// NewCircleCreatedEvent creates a new CircleCreatedEvent
func NewCircleCreatedEvent(circleID, name, ownerID string) *CircleCreatedEvent {
	return &CircleCreatedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeCircleCreated, circleID),
		CircleID:  circleID,
		Name:      name,
		OwnerID:   ownerID,
	}
}

// MemberJoinedEvent is raised when a user joins a circle
type MemberJoinedEvent struct {
	events.BaseEvent
	CircleID    string
	UserID      string
	MemberCount int
}

// NewMemberJoinedEvent creates a new MemberJoinedEvent
func NewMemberJoinedEvent(circleID, userID string, memberCount int) *MemberJoinedEvent {
	return &MemberJoinedEvent{
		BaseEvent:   events.NewBaseEvent(EventTypeMemberJoined, circleID),
		CircleID:    circleID,
		UserID:      userID,
		MemberCount: memberCount,
	}
}
