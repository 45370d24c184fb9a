package memory

import (
	"context"
	"time"

	"circles-core/internal/domain/user"
)

type userRepository struct {
	s *session
}

func (r *userRepository) Save(_ context.Context, u *user.User) error {
	if err := r.s.check(); err != nil {
		return err
	}

	for _, rec := range r.s.work.users {
		if rec.name == u.Name().String() && rec.id != u.ID().String() {
			return user.ErrUserAlreadyExists(rec.name)
		}
	}

	var rec userRecord
	u.Notify(&rec)
	r.s.work.users[rec.id] = rec
	return nil
}

var _ user.Notification = (*userRecord)(nil)

func (rec *userRecord) SetID(id user.UserID)              { rec.id = id.String() }
func (rec *userRecord) SetName(name user.UserName)        { rec.name = name.String() }
func (rec *userRecord) SetMailAddress(a user.MailAddress) { rec.mail = a.String() }
func (rec *userRecord) SetPremium(premium bool)           { rec.premium = premium }
func (rec *userRecord) SetTimestamps(created, updated time.Time) {
	rec.createdAt, rec.updatedAt = created, updated
}

func (r *userRepository) FindByID(_ context.Context, id user.UserID) (*user.User, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	rec, ok := r.s.work.users[id.String()]
	if !ok {
		return nil, user.ErrUserNotFound(id.String())
	}
	return rec.toDomain()
}

func (r *userRepository) FindByIDs(_ context.Context, ids []user.UserID) ([]*user.User, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		rec, ok := r.s.work.users[id.String()]
		if !ok {
			continue
		}
		u, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *userRepository) FindByName(_ context.Context, name user.UserName) (*user.User, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	for _, rec := range r.s.work.users {
		if rec.name == name.String() {
			return rec.toDomain()
		}
	}
	return nil, user.ErrUserNotFound(name.String())
}

func (r *userRepository) Delete(_ context.Context, id user.UserID) error {
	if err := r.s.check(); err != nil {
		return err
	}

	if _, ok := r.s.work.users[id.String()]; !ok {
		return user.ErrUserNotFound(id.String())
	}
	for _, c := range r.s.work.circles {
		if c.owner == id.String() {
			return user.ErrUserOwnsCircle(id.String())
		}
	}

	delete(r.s.work.users, id.String())
	for k, c := range r.s.work.circles {
		c.members = without(c.members, id.String())
		r.s.work.circles[k] = c
	}
	return nil
}

func (rec userRecord) toDomain() (*user.User, error) {
	return user.Reconstitute(rec.id, rec.name, rec.mail, rec.premium, rec.createdAt, rec.updatedAt)
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
