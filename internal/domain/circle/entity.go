package circle

import (
	"context"
	"fmt"
	"time"

	"circles-core/internal/domain/events"
	"circles-core/internal/domain/user"
)

// Specification decides whether a circle is full. The aggregate only consumes
// the decision; it never holds the lookup the decision needs.
type Specification interface {
	IsSatisfiedBy(ctx context.Context, c *Circle) (bool, error)
}

// Circle is the aggregate root for a group of users. The owner is tracked
// separately and is not part of the member roster.
type Circle struct {
	events.Recorder

	id        CircleID
	name      CircleName
	owner     user.UserID
	members   []user.UserID
	createdAt time.Time
	updatedAt time.Time
}

// New creates a circle with an empty roster. Factories are the intended callers.
func New(id CircleID, name CircleName, owner user.UserID) (*Circle, error) {
	if id.IsZero() {
		return nil, ErrInvalidCircleData("id", fmt.Errorf("circle ID is required"))
	}
	if name == (CircleName{}) {
		return nil, ErrInvalidCircleData("name", fmt.Errorf("circle name is required"))
	}
	if owner.IsZero() {
		return nil, ErrInvalidCircleData("owner", fmt.Errorf("owner is required"))
	}

	now := time.Now().UTC()
	c := &Circle{
		id:        id,
		name:      name,
		owner:     owner,
		members:   []user.UserID{},
		createdAt: now,
		updatedAt: now,
	}
	c.Record(NewCircleCreatedEvent(id.String(), name.String(), owner.String()))
	return c, nil
}

// Reconstitute recreates a Circle from persistence
func Reconstitute(id, name, owner string, members []string, createdAt, updatedAt time.Time) (*Circle, error) {
	circleID, err := NewCircleID(id)
	if err != nil {
		return nil, err
	}

	nameVO, err := NewCircleName(name)
	if err != nil {
		return nil, err
	}

	ownerID, err := user.NewUserID(owner)
	if err != nil {
		return nil, ErrInvalidCircleData("owner", err)
	}

	c := &Circle{
		id:        circleID,
		name:      nameVO,
		owner:     ownerID,
		members:   make([]user.UserID, 0, len(members)),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}

	for _, m := range members {
		memberID, err := user.NewUserID(m)
		if err != nil {
			return nil, ErrInvalidCircleData("member", err)
		}
		if c.isPartOf(memberID) {
			return nil, ErrAlreadyMember(m)
		}
		c.members = append(c.members, memberID)
	}

	return c, nil
}

// Join adds member to the roster. It rejects nil members, users that are
// already part of the circle and joins the full specification refuses.
func (c *Circle) Join(ctx context.Context, member *user.User, full Specification) error {
	if member == nil {
		return ErrMemberRequired()
	}
	if full == nil {
		return ErrInvalidCircleData("specification", fmt.Errorf("capacity specification is required"))
	}
	if c.isPartOf(member.ID()) {
		return ErrAlreadyMember(member.ID().String())
	}

	isFull, err := full.IsSatisfiedBy(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to evaluate circle capacity: %w", err)
	}
	if isFull {
		return ErrCircleFull(c.id.String())
	}

	c.members = append(c.members, member.ID())
	c.updatedAt = time.Now().UTC()
	c.Record(NewMemberJoinedEvent(c.id.String(), member.ID().String(), len(c.members)))
	return nil
}

// isPartOf covers both the roster and the owner
func (c *Circle) isPartOf(id user.UserID) bool {
	return c.owner.Equals(id) || c.IsMember(id)
}

// IsMember reports whether id is on the roster
func (c *Circle) IsMember(id user.UserID) bool {
	for _, m := range c.members {
		if m.Equals(id) {
			return true
		}
	}
	return false
}

// Leave removes id from the roster. Removing a user who is not a member is a no-op.
func (c *Circle) Leave(id user.UserID) bool {
	for i, m := range c.members {
		if m.Equals(id) {
			c.members = append(c.members[:i], c.members[i+1:]...)
			c.updatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// CountMembers returns the roster size. The owner is not counted.
func (c *Circle) CountMembers() int {
	return len(c.members)
}

// IsOwnedBy reports whether id owns the circle
func (c *Circle) IsOwnedBy(id user.UserID) bool {
	return c.owner.Equals(id)
}

// Getters

func (c *Circle) ID() CircleID {
	return c.id
}

func (c *Circle) Name() CircleName {
	return c.name
}

func (c *Circle) Owner() user.UserID {
	return c.owner
}

// Members returns a copy of the roster in join order
func (c *Circle) Members() []user.UserID {
	out := make([]user.UserID, len(c.members))
	copy(out, c.members)
	return out
}

func (c *Circle) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Circle) UpdatedAt() time.Time {
	return c.updatedAt
}

// String returns string representation (for debugging)
func (c *Circle) String() string {
	return fmt.Sprintf("Circle{id: %s, name: %s, owner: %s, members: %d}",
		c.id.String(), c.name.String(), c.owner.String(), len(c.members))
}
