package persistence

import (
	"context"

	appcontact "github.com/registers/backend/internal/application/contact"
	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContactTransactionScope implements the contact TransactionScope using
// GORM transactions. The aggregate write, the value get-or-create calls, the
// orphan deletions and the outbox entry all share one transaction.
type GormContactTransactionScope struct {
	db *gorm.DB
}

// NewGormContactTransactionScope creates a new GormContactTransactionScope
func NewGormContactTransactionScope(db *gorm.DB) *GormContactTransactionScope {
	return &GormContactTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormContactTransactionScope) Execute(ctx context.Context, fn func(repos appcontact.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormContactRepositories{tx: tx})
	})
}

// gormContactRepositories provides transaction-scoped repositories
type gormContactRepositories struct {
	tx *gorm.DB
}

// ContactDetails returns the aggregate repository scoped to the current transaction
func (r *gormContactRepositories) ContactDetails() contact.ContactDetailsRepository {
	return NewGormContactDetailsRepository(r.tx)
}

// Values returns the value repository scoped to the current transaction
func (r *gormContactRepositories) Values() contact.ValueRepository {
	return NewGormContactValueRepository(r.tx)
}

// Outbox returns the outbox repository scoped to the current transaction
func (r *gormContactRepositories) Outbox() shared.OutboxRepository {
	return NewGormOutboxRepository(r.tx)
}

var _ appcontact.TransactionScope = (*GormContactTransactionScope)(nil)
