package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"circles-core/internal/application/dto"
	"circles-core/internal/application/uow"
	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/events"
	"circles-core/internal/domain/user"
)

// CircleService handles circle-related use cases
type CircleService struct {
	uow        uow.UnitOfWork
	factory    circle.Factory
	dispatcher *events.Dispatcher
	log        *zap.Logger
}

// NewCircleService creates a new circle service. dispatcher may be nil.
func NewCircleService(work uow.UnitOfWork, factory circle.Factory, dispatcher *events.Dispatcher, log *zap.Logger) *CircleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CircleService{
		uow:        work,
		factory:    factory,
		dispatcher: dispatcher,
		log:        log.Named("circle-service"),
	}
}

// Create creates a circle owned by an existing user
func (s *CircleService) Create(ctx context.Context, cmd dto.CreateCircleCommand) (*dto.CircleData, error) {
	ownerID, err := user.NewUserID(cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	name, err := circle.NewCircleName(cmd.Name)
	if err != nil {
		return nil, err
	}

	var created *circle.Circle
	err = uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
		owner, err := tx.Users().FindByID(ctx, ownerID)
		if err != nil {
			return err
		}

		c, err := s.factory.Create(name, owner)
		if err != nil {
			return fmt.Errorf("failed to create circle entity: %w", err)
		}

		exists, err := circle.NewService(tx.Circles()).Exists(ctx, c)
		if err != nil {
			return err
		}
		if exists {
			return circle.ErrCircleAlreadyExists(name.String())
		}

		if err := tx.Circles().Save(ctx, c); err != nil {
			return fmt.Errorf("failed to save circle: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("circle created",
		zap.String("circle_id", created.ID().String()),
		zap.String("owner_id", ownerID.String()))
	publish(ctx, s.dispatcher, s.log, created.PullEvents())
	return dto.NewCircleData(created, circle.BaseCapacity), nil
}

// Join adds a user to a circle. The capacity check, the roster change and the
// write happen in one unit of work; any failure leaves the circle unchanged.
func (s *CircleService) Join(ctx context.Context, cmd dto.JoinCircleCommand) (*dto.CircleData, error) {
	circleID, err := circle.NewCircleID(cmd.CircleID)
	if err != nil {
		return nil, err
	}
	userID, err := user.NewUserID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	var (
		joined   *circle.Circle
		capacity int
	)
	err = uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
		c, err := tx.Circles().FindByIDForUpdate(ctx, circleID)
		if err != nil {
			return err
		}
		member, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}

		full := circle.NewFullSpecification(tx.Users())
		if err := c.Join(ctx, member, full); err != nil {
			return err
		}

		if err := tx.Circles().Save(ctx, c); err != nil {
			return fmt.Errorf("failed to save circle: %w", err)
		}

		capacity, err = full.Capacity(ctx, c)
		if err != nil {
			return err
		}
		joined = c
		return nil
	})
	if err != nil {
		s.log.Debug("join rejected",
			zap.String("circle_id", circleID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("member joined",
		zap.String("circle_id", circleID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("members", joined.CountMembers()),
		zap.Int("capacity", capacity))
	publish(ctx, s.dispatcher, s.log, joined.PullEvents())
	return dto.NewCircleData(joined, capacity), nil
}

// Get retrieves a circle with its current capacity
func (s *CircleService) Get(ctx context.Context, id string) (*dto.CircleData, error) {
	circleID, err := circle.NewCircleID(id)
	if err != nil {
		return nil, err
	}

	var data *dto.CircleData
	err = uow.Run(ctx, s.uow, func(ctx context.Context, tx uow.Session) error {
		c, err := tx.Circles().FindByID(ctx, circleID)
		if err != nil {
			return err
		}
		capacity, err := circle.NewFullSpecification(tx.Users()).Capacity(ctx, c)
		if err != nil {
			return err
		}
		data = dto.NewCircleData(c, capacity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
