package persistence

import (
	"context"

	appcourt "github.com/registers/backend/internal/application/court"
	appprison "github.com/registers/backend/internal/application/prison"
	"github.com/registers/backend/internal/domain/court"
	"github.com/registers/backend/internal/domain/prison"
	"github.com/registers/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPrisonTransactionScope implements the prison TransactionScope using
// GORM transactions. The aggregate write and its outbox entries share one
// transaction.
type GormPrisonTransactionScope struct {
	db *gorm.DB
}

// NewGormPrisonTransactionScope creates a new GormPrisonTransactionScope
func NewGormPrisonTransactionScope(db *gorm.DB) *GormPrisonTransactionScope {
	return &GormPrisonTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormPrisonTransactionScope) Execute(ctx context.Context, fn func(repos appprison.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPrisonRepositories{tx: tx})
	})
}

// gormPrisonRepositories provides transaction-scoped repositories
type gormPrisonRepositories struct {
	tx *gorm.DB
}

// Prisons returns the aggregate repository scoped to the current transaction
func (r *gormPrisonRepositories) Prisons() prison.Repository {
	return NewGormPrisonRepository(r.tx)
}

// Outbox returns the outbox repository scoped to the current transaction
func (r *gormPrisonRepositories) Outbox() shared.OutboxRepository {
	return NewGormOutboxRepository(r.tx)
}

var _ appprison.TransactionScope = (*GormPrisonTransactionScope)(nil)

// GormCourtTransactionScope implements the court TransactionScope using
// GORM transactions
type GormCourtTransactionScope struct {
	db *gorm.DB
}

// NewGormCourtTransactionScope creates a new GormCourtTransactionScope
func NewGormCourtTransactionScope(db *gorm.DB) *GormCourtTransactionScope {
	return &GormCourtTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCourtTransactionScope) Execute(ctx context.Context, fn func(repos appcourt.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCourtRepositories{tx: tx})
	})
}

// gormCourtRepositories provides transaction-scoped repositories
type gormCourtRepositories struct {
	tx *gorm.DB
}

// Courts returns the aggregate repository scoped to the current transaction
func (r *gormCourtRepositories) Courts() court.Repository {
	return NewGormCourtRepository(r.tx)
}

// Outbox returns the outbox repository scoped to the current transaction
func (r *gormCourtRepositories) Outbox() shared.OutboxRepository {
	return NewGormOutboxRepository(r.tx)
}

var _ appcourt.TransactionScope = (*GormCourtTransactionScope)(nil)
