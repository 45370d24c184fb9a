package circle

import (
	"context"
	"fmt"

	"circles-core/internal/domain/user"
)

const (
	// BaseCapacity is the member limit of an ordinary circle
	BaseCapacity = 30

	// PremiumCapacity applies once PremiumThreshold premium users are members
	PremiumCapacity = 50

	// PremiumThreshold is inclusive
	PremiumThreshold = 10
)

// Capacity returns the member limit for a roster holding premiumMembers premium users
func Capacity(premiumMembers int) int {
	if premiumMembers >= PremiumThreshold {
		return PremiumCapacity
	}
	return BaseCapacity
}

// MemberLookup resolves member identities into users. user.Repository satisfies it.
type MemberLookup interface {
	FindByIDs(ctx context.Context, ids []user.UserID) ([]*user.User, error)
}

// FullSpecification is satisfied by circles that cannot accept another member
type FullSpecification struct {
	users MemberLookup
}

// NewFullSpecification creates the specification over a read-only lookup
func NewFullSpecification(users MemberLookup) *FullSpecification {
	return &FullSpecification{users: users}
}

// IsSatisfiedBy reports true when c is full
func (s *FullSpecification) IsSatisfiedBy(ctx context.Context, c *Circle) (bool, error) {
	limit, err := s.Capacity(ctx, c)
	if err != nil {
		return false, err
	}
	return c.CountMembers() >= limit, nil
}

// Capacity evaluates the current member limit of c from its live roster
func (s *FullSpecification) Capacity(ctx context.Context, c *Circle) (int, error) {
	premium, err := s.countPremium(ctx, c.Members())
	if err != nil {
		return 0, err
	}
	return Capacity(premium), nil
}

func (s *FullSpecification) countPremium(ctx context.Context, ids []user.UserID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	members, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve circle members: %w", err)
	}

	resolved := make(map[string]bool, len(members))
	premium := 0
	for _, m := range members {
		if resolved[m.ID().String()] {
			continue
		}
		resolved[m.ID().String()] = true
		if m.IsPremium() {
			premium++
		}
	}

	for _, id := range ids {
		if !resolved[id.String()] {
			return 0, user.ErrUserNotFound(id.String())
		}
	}

	return premium, nil
}
