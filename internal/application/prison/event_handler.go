package prison

import (
	"context"

	"go.uber.org/zap"

	"github.com/registers/backend/internal/domain/prison"
	"github.com/registers/backend/internal/domain/shared"
)

// PrisonAmendedHandler invalidates cached prison responses when an amendment
// event is delivered. Amendments reach the bus through the outbox, so the
// cache entry may be stale for at most one poll interval plus the cache TTL.
type PrisonAmendedHandler struct {
	cache  Cache
	logger *zap.Logger
}

// NewPrisonAmendedHandler creates a handler that keeps the prison cache
// coherent with amendment events
func NewPrisonAmendedHandler(cache Cache, logger *zap.Logger) *PrisonAmendedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrisonAmendedHandler{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *PrisonAmendedHandler) EventTypes() []string {
	return []string{prison.EventTypePrisonAmended}
}

// Handle processes a prison amendment event
func (h *PrisonAmendedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	amended, ok := event.(*prison.PrisonAmendedEvent)
	if !ok {
		h.logger.Warn("Unexpected event payload for prison amendment",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
		)
		return nil
	}

	h.cache.Invalidate(ctx, amended.PrisonID)
	h.logger.Debug("Prison cache invalidated",
		zap.String("prison_id", amended.PrisonID),
	)
	return nil
}
