package court

import (
	"context"
)

// Repository defines the interface for court persistence
type Repository interface {
	// FindByCourtID loads a court by its external id, returning
	// shared.ErrNotFound if absent
	FindByCourtID(ctx context.Context, courtID string) (*Court, error)

	// FindAll loads every court ordered by court id; when activeOnly is set,
	// inactive courts are excluded
	FindAll(ctx context.Context, activeOnly bool) ([]Court, error)

	// ExistsByCourtID checks whether a court id is registered
	ExistsByCourtID(ctx context.Context, courtID string) (bool, error)

	// Save creates or updates a court together with its buildings
	Save(ctx context.Context, c *Court) error
}
