package circle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"circles-core/internal/domain/user"
)

// stubLookup resolves users from a map and counts calls
type stubLookup struct {
	users map[string]*user.User
	calls int
	err   error
}

func newStubLookup() *stubLookup {
	return &stubLookup{users: map[string]*user.User{}}
}

func (s *stubLookup) FindByIDs(_ context.Context, ids []user.UserID) ([]*user.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id.String()]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubLookup) add(u *user.User) *user.User {
	s.users[u.ID().String()] = u
	return u
}

func newTestUser(t *testing.T, id string, premium bool) *user.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := user.Reconstitute(id, "user-"+id, id+"@example.com", premium, now, now)
	if err != nil {
		t.Fatalf("failed to build user %s: %v", id, err)
	}
	return u
}

func newTestCircle(t *testing.T) *Circle {
	t.Helper()
	now := time.Now().UTC()
	c, err := Reconstitute("circle-1", "gophers", "owner", nil, now, now)
	if err != nil {
		t.Fatalf("failed to build circle: %v", err)
	}
	return c
}

// fill joins count users through spec, the first premium of them being premium
func fill(t *testing.T, c *Circle, lookup *stubLookup, spec Specification, count, premium int) {
	t.Helper()
	offset := c.CountMembers()
	for i := 0; i < count; i++ {
		u := lookup.add(newTestUser(t, fmt.Sprintf("m%03d", offset+i), i < premium))
		if err := c.Join(context.Background(), u, spec); err != nil {
			t.Fatalf("join %d failed: %v", offset+i, err)
		}
	}
}
