package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"circles-core/internal/application/service"
	"circles-core/internal/application/uow"
	"circles-core/internal/config"
	"circles-core/internal/database"
	"circles-core/internal/domain/circle"
	"circles-core/internal/domain/events"
	"circles-core/internal/domain/user"
	"circles-core/internal/infrastructure/cache"
	"circles-core/internal/infrastructure/persistence"
	"circles-core/internal/infrastructure/persistence/memory"
	"circles-core/internal/logger"
	"circles-core/internal/presentation/cli"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, release := cli.NewRootCommand(newBuilder(cfg, log), cfg.Storage.Backend)
	err = root.ExecuteContext(ctx)
	release()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newBuilder wires the application layer over the selected storage backend
func newBuilder(cfg *config.Config, log *zap.Logger) cli.Builder {
	return func(ctx context.Context, storage string) (*cli.Deps, func(), error) {
		var (
			work    uow.UnitOfWork
			deps    = &cli.Deps{Storage: storage}
			release = func() {}
		)

		switch storage {
		case config.StoragePostgres:
			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			work = persistence.NewUnitOfWork(db, log)
			deps.Ping = db.Ping
			deps.Migrate = db.Migrate
			release = func() {
				if err := db.Close(); err != nil {
					log.Warn("failed to close database", zap.Error(err))
				}
			}
		case config.StorageMemory:
			work = memory.NewStore(log)
		default:
			return nil, nil, fmt.Errorf("unknown storage backend %q", storage)
		}

		// Domain event handlers
		dispatcher := events.NewDispatcher(log)
		audit := log.Named("audit")
		for _, eventType := range []string{
			user.EventTypeUserRegistered,
			user.EventTypeUserUpdated,
			user.EventTypeUserPremiumChanged,
			user.EventTypeUserDeleted,
			circle.EventTypeCircleCreated,
			circle.EventTypeMemberJoined,
		} {
			dispatcher.Register(eventType, func(_ context.Context, e events.DomainEvent) error {
				audit.Info("domain event",
					zap.String("event_type", e.EventType()),
					zap.String("aggregate_id", e.AggregateID()),
					zap.Time("occurred_at", e.OccurredAt()))
				return nil
			})
		}

		userCache := cache.NewUserCache(time.Duration(cfg.Cache.UserTTLSeconds) * time.Second)

		// Application services
		deps.Users = service.NewUserService(work, user.NewUUIDFactory(), userCache, dispatcher, log)
		deps.Circles = service.NewCircleService(work, circle.NewUUIDFactory(), dispatcher, log)

		return deps, release, nil
	}
}
