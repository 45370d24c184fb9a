package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"circles-core/internal/application/dto"
	"circles-core/internal/application/uow"
	"circles-core/internal/domain/events"
	"circles-core/internal/domain/user"
)

// UserCache caches user read models by id
type UserCache interface {
	Get(id string) (*dto.UserData, bool)
	Set(data *dto.UserData)
	Delete(id string)
}

// UserService handles user-related use cases
type UserService struct {
	uow        uow.UnitOfWork
	factory    user.Factory
	cache      UserCache
	dispatcher *events.Dispatcher
	log        *zap.Logger

	// collapses concurrent cache misses for the same id
	reads singleflight.Group

	// gen counts invalidations per id; a fill loaded before the latest
	// invalidation is dropped instead of cached
	genMu sync.Mutex
	gen   map[string]uint64
}

// NewUserService creates a new user service. cache and dispatcher may be nil.
func NewUserService(work uow.UnitOfWork, factory user.Factory, cache UserCache, dispatcher *events.Dispatcher, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	if cache == nil {
		cache = noCache{}
	}
	return &UserService{
		uow:        work,
		factory:    factory,
		cache:      cache,
		dispatcher: dispatcher,
		log:        log.Named("user-service"),
		gen:        make(map[string]uint64),
	}
}

// Register creates a new user with a unique name
func (s *UserService) Register(ctx context.Context, cmd dto.RegisterUserCommand) (*dto.UserData, error) {
	name, err := user.NewUserName(cmd.Name)
	if err != nil {
		return nil, err
	}
	mail, err := user.NewMailAddress(cmd.MailAddress)
	if err != nil {
		return nil, err
	}

	var created *user.User
	err = uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
		u, err := s.factory.Create(name, mail)
		if err != nil {
			return fmt.Errorf("failed to create user entity: %w", err)
		}

		exists, err := user.NewService(tx.Users()).Exists(ctx, u)
		if err != nil {
			return err
		}
		if exists {
			return user.ErrUserAlreadyExists(name.String())
		}

		if err := tx.Users().Save(ctx, u); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", created.ID().String()))
	publish(ctx, s.dispatcher, s.log, created.PullEvents())

	data := dto.NewUserData(created)
	s.cache.Set(data)
	return data, nil
}

// Get retrieves a user by ID, reading through the cache
func (s *UserService) Get(ctx context.Context, id string) (*dto.UserData, error) {
	userID, err := user.NewUserID(id)
	if err != nil {
		return nil, err
	}

	if data, ok := s.cache.Get(userID.String()); ok {
		return data, nil
	}

	v, err, _ := s.reads.Do(userID.String(), func() (any, error) {
		gen := s.generation(userID.String())
		var data *dto.UserData
		err := uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
			u, err := tx.Users().FindByID(ctx, userID)
			if err != nil {
				return err
			}
			data = dto.NewUserData(u)
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.fill(data, gen)
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing a flight get their own copy
	data := *v.(*dto.UserData)
	return &data, nil
}

// Update changes the name and/or mail address of a user
func (s *UserService) Update(ctx context.Context, cmd dto.UpdateUserCommand) (*dto.UserData, error) {
	userID, err := user.NewUserID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name == nil && cmd.MailAddress == nil {
		return nil, user.ErrInvalidUserData("update", errNothingToUpdate)
	}

	var updated *user.User
	err = uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}

		if cmd.Name != nil {
			if err := u.ChangeName(*cmd.Name); err != nil {
				return err
			}
			exists, err := user.NewService(tx.Users()).Exists(ctx, u)
			if err != nil {
				return err
			}
			if exists {
				return user.ErrUserAlreadyExists(u.Name().String())
			}
		}

		if cmd.MailAddress != nil {
			if err := u.ChangeMailAddress(*cmd.MailAddress); err != nil {
				return err
			}
		}

		if err := tx.Users().Save(ctx, u); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		u.Record(user.NewUserUpdatedEvent(u.ID().String(), u.Name().String(), u.MailAddress().String()))
		updated = u
		return nil
	})
	s.invalidate(userID.String())
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.log, updated.PullEvents())
	return dto.NewUserData(updated), nil
}

// ChangePremium grants or revokes premium status. The new status counts toward
// circle capacity from the next join onward.
func (s *UserService) ChangePremium(ctx context.Context, cmd dto.ChangePremiumCommand) (*dto.UserData, error) {
	userID, err := user.NewUserID(cmd.ID)
	if err != nil {
		return nil, err
	}

	var updated *user.User
	err = uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}

		u.SetPremium(cmd.Premium)
		if err := tx.Users().Save(ctx, u); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		updated = u
		return nil
	})
	s.invalidate(userID.String())
	if err != nil {
		return nil, err
	}

	s.log.Info("premium status changed",
		zap.String("user_id", userID.String()),
		zap.Bool("premium", cmd.Premium))
	publish(ctx, s.dispatcher, s.log, updated.PullEvents())
	return dto.NewUserData(updated), nil
}

// Delete removes a user and its memberships. Circle owners cannot be deleted.
func (s *UserService) Delete(ctx context.Context, cmd dto.DeleteUserCommand) error {
	userID, err := user.NewUserID(cmd.ID)
	if err != nil {
		return err
	}

	err = uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			return err
		}

		owns, err := tx.Circles().ExistsByOwner(ctx, userID)
		if err != nil {
			return err
		}
		if owns {
			return user.ErrUserOwnsCircle(userID.String())
		}

		joined, err := tx.Circles().FindByMember(ctx, userID)
		if err != nil {
			return err
		}
		for _, c := range joined {
			c.Leave(userID)
			if err := tx.Circles().Save(ctx, c); err != nil {
				return fmt.Errorf("failed to update circle %s: %w", c.ID(), err)
			}
		}

		return tx.Users().Delete(ctx, userID)
	})
	s.invalidate(userID.String())
	if err != nil {
		return err
	}

	s.log.Info("user deleted", zap.String("user_id", userID.String()))
	publish(ctx, s.dispatcher, s.log, []events.DomainEvent{user.NewUserDeletedEvent(userID.String())})
	return nil
}

var errNothingToUpdate = errors.New("neither name nor mail address given")

func (s *UserService) generation(id string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gen[id]
}

// invalidate evicts id and makes any in-flight fill for it stale
func (s *UserService) invalidate(id string) {
	s.genMu.Lock()
	s.gen[id]++
	s.cache.Delete(id)
	s.genMu.Unlock()
	s.reads.Forget(id)
}

// fill caches data unless id was invalidated after gen was read
func (s *UserService) fill(data *dto.UserData, gen uint64) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gen[data.ID] != gen {
		return
	}
	s.cache.Set(data)
}

type noCache struct{}

func (noCache) Get(string) (*dto.UserData, bool) { return nil, false }
func (noCache) Set(*dto.UserData)                {}
func (noCache) Delete(string)                    {}
