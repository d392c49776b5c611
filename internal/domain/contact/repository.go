package contact

import (
	"context"

	"github.com/google/uuid"
)

// ContactDetailsRepository defines persistence for the ContactDetails aggregate
type ContactDetailsRepository interface {
	// FindByPrisonAndDepartment loads the aggregate for a (prison, department)
	// pair, returning shared.ErrNotFound if absent
	FindByPrisonAndDepartment(ctx context.Context, prisonID string, department DepartmentType) (*ContactDetails, error)

	// FindAllForPrison loads every aggregate belonging to a prison
	FindAllForPrison(ctx context.Context, prisonID string) ([]ContactDetails, error)

	// ExistsByPrisonAndDepartment checks whether an aggregate exists for the pair
	ExistsByPrisonAndDepartment(ctx context.Context, prisonID string, department DepartmentType) (bool, error)

	// Save creates or updates an aggregate
	Save(ctx context.Context, details *ContactDetails) error

	// Delete removes an aggregate row. Value rows referenced by the aggregate
	// are not touched; orphan collection is the caller's responsibility.
	Delete(ctx context.Context, details *ContactDetails) error
}

// ValueRepository defines persistence for contact value rows. One
// implementation serves all three channels; the channel parameter selects the
// backing table.
type ValueRepository interface {
	// FindByValue looks a value row up by exact string match, returning
	// shared.ErrNotFound if absent
	FindByValue(ctx context.Context, channel Channel, value string) (*ContactValue, error)

	// GetOrCreate returns the existing row for the value string or inserts a
	// new one. Concurrent callers racing on the same new value must converge
	// on a single row: the implementation relies on the unique constraint and
	// re-reads on a duplicate-key insert failure.
	GetOrCreate(ctx context.Context, channel Channel, value string) (*ContactValue, error)

	// ReferenceCount counts the ContactDetails rows whose channel reference
	// points at the value row
	ReferenceCount(ctx context.Context, channel Channel, id uuid.UUID) (int64, error)

	// DeleteIfOrphaned deletes the value row iff no aggregate references it,
	// reporting whether a deletion happened. Must run in the same transaction
	// as the reference removal that may have orphaned the row.
	DeleteIfOrphaned(ctx context.Context, channel Channel, id uuid.UUID) (bool, error)
}
