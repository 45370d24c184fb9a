package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"circles-core/internal/application/dto"
)

// UserCache keeps user read models in process memory
type UserCache struct{ c *gocache.Cache }

// NewUserCache creates a cache whose entries expire after ttl. A zero ttl
// keeps entries until they are deleted.
func NewUserCache(ttl time.Duration) *UserCache {
	if ttl <= 0 {
		return &UserCache{c: gocache.New(gocache.NoExpiration, 0)}
	}
	return &UserCache{c: gocache.New(ttl, 2*ttl)}
}

func (u *UserCache) Get(id string) (*dto.UserData, bool) {
	v, ok := u.c.Get(id)
	if !ok {
		return nil, false
	}
	data, ok := v.(dto.UserData)
	if !ok {
		return nil, false
	}
	return &data, true
}

// Set stores a copy of data so callers cannot mutate cached entries
func (u *UserCache) Set(data *dto.UserData) {
	if data == nil {
		return
	}
	u.c.SetDefault(data.ID, *data)
}

func (u *UserCache) Delete(id string) {
	u.c.Delete(id)
}

// Len returns the number of cached entries, expired ones included until cleanup
func (u *UserCache) Len() int {
	return u.c.ItemCount()
}
