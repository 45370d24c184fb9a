package memory

import (
	"context"
	"sort"

	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/user"
)

type circleRepository struct {
	s *session
}

func (r *circleRepository) Save(_ context.Context, c *circle.Circle) error {
	if err := r.s.check(); err != nil {
		return err
	}

	for _, rec := range r.s.work.circles {
		if rec.name == c.Name().String() && rec.id != c.ID().String() {
			return circle.ErrCircleAlreadyExists(rec.name)
		}
	}

	if _, ok := r.s.work.users[c.Owner().String()]; !ok {
		return user.ErrUserNotFound(c.Owner().String())
	}

	members := make([]string, 0, c.CountMembers())
	for _, m := range c.Members() {
		if _, ok := r.s.work.users[m.String()]; !ok {
			return user.ErrUserNotFound(m.String())
		}
		members = append(members, m.String())
	}

	r.s.work.circles[c.ID().String()] = circleRecord{
		id:        c.ID().String(),
		name:      c.Name().String(),
		owner:     c.Owner().String(),
		members:   members,
		createdAt: c.CreatedAt(),
		updatedAt: c.UpdatedAt(),
	}
	return nil
}

func (r *circleRepository) FindByID(_ context.Context, id circle.CircleID) (*circle.Circle, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	rec, ok := r.s.work.circles[id.String()]
	if !ok {
		return nil, circle.ErrCircleNotFound(id.String())
	}
	return rec.toDomain()
}

// FindByIDForUpdate is FindByID: the store already serializes sessions
func (r *circleRepository) FindByIDForUpdate(ctx context.Context, id circle.CircleID) (*circle.Circle, error) {
	return r.FindByID(ctx, id)
}

func (r *circleRepository) FindByName(_ context.Context, name circle.CircleName) (*circle.Circle, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	for _, rec := range r.s.work.circles {
		if rec.name == name.String() {
			return rec.toDomain()
		}
	}
	return nil, circle.ErrCircleNotFound(name.String())
}

func (r *circleRepository) FindByMember(_ context.Context, id user.UserID) ([]*circle.Circle, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	var out []*circle.Circle
	for _, rec := range r.s.work.circles {
		for _, m := range rec.members {
			if m != id.String() {
				continue
			}
			c, err := rec.toDomain()
			if err != nil {
				return nil, err
			}
			out = append(out, c)
			break
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (r *circleRepository) ExistsByOwner(_ context.Context, id user.UserID) (bool, error) {
	if err := r.s.check(); err != nil {
		return false, err
	}

	for _, rec := range r.s.work.circles {
		if rec.owner == id.String() {
			return true, nil
		}
	}
	return false, nil
}

func (rec circleRecord) toDomain() (*circle.Circle, error) {
	return circle.Reconstitute(rec.id, rec.name, rec.owner, rec.members, rec.createdAt, rec.updatedAt)
}
