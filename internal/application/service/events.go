package service

import (
	"context"

	"go.uber.org/zap"

	"circles-core/internal/domain/events"
)

// publish dispatches events recorded during a committed unit of work. The
// change is already durable, so handler failures are logged, not returned.
func publish(ctx context.Context, d *events.Dispatcher, log *zap.Logger, evts []events.DomainEvent) {
	if d == nil || len(evts) == 0 {
		return
	}
	if err := d.DispatchAll(ctx, evts); err != nil {
		log.Warn("failed to publish domain events", zap.Int("count", len(evts)), zap.Error(err))
	}
}
