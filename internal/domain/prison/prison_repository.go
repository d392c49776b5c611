package prison

import (
	"context"
)

// SearchFilter narrows prison search results. Zero values mean "no filter".
type SearchFilter struct {
	Active     *bool
	TextSearch string
	Male       *bool
	Female     *bool
	TypeCodes  []TypeCode
	SortBy     string
	SortDir    string
}

// Repository defines the interface for prison persistence
type Repository interface {
	// FindByPrisonID loads a prison by its external id, returning
	// shared.ErrNotFound if absent
	FindByPrisonID(ctx context.Context, prisonID string) (*Prison, error)

	// FindAll loads every prison ordered by prison id
	FindAll(ctx context.Context) ([]Prison, error)

	// Search loads prisons matching the filter
	Search(ctx context.Context, filter SearchFilter) ([]Prison, error)

	// ExistsByPrisonID checks whether a prison id is registered
	ExistsByPrisonID(ctx context.Context, prisonID string) (bool, error)

	// Save creates or updates a prison together with its types and addresses
	Save(ctx context.Context, p *Prison) error
}
