package dto

import (
	"time"

	"circles-core/internal/domain/circle"
)

// CreateCircleCommand represents a request to create a circle
type CreateCircleCommand struct {
	OwnerID string `json:"owner_id" yaml:"owner_id"`
	Name    string `json:"name" yaml:"name"`
}

// JoinCircleCommand represents a request for a user to join a circle
type JoinCircleCommand struct {
	CircleID string `json:"circle_id" yaml:"circle_id"`
	UserID   string `json:"user_id" yaml:"user_id"`
}

// CircleData is the read model of a circle handed to presentation
type CircleData struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	OwnerID     string    `json:"owner_id" yaml:"owner_id"`
	Members     []string  `json:"members" yaml:"members"`
	MemberCount int       `json:"member_count" yaml:"member_count"`
	Capacity    int       `json:"capacity" yaml:"capacity"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewCircleData builds the read model from the aggregate and its current capacity
func NewCircleData(c *circle.Circle, capacity int) *CircleData {
	members := make([]string, 0, c.CountMembers())
	for _, m := range c.Members() {
		members = append(members, m.String())
	}

	return &CircleData{
		ID:          c.ID().String(),
		Name:        c.Name().String(),
		OwnerID:     c.Owner().String(),
		Members:     members,
		MemberCount: c.CountMembers(),
		Capacity:    capacity,
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
