package contact

import (
	"context"

	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the contact repositories.
// Every mutating reconciliation runs inside exactly one scope execution: the
// aggregate write, the value get-or-create calls, the orphan deletions and
// the outbox entry all commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the contact repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ContactDetails returns the aggregate repository scoped to the transaction
	ContactDetails() contact.ContactDetailsRepository
	// Values returns the value repository scoped to the transaction
	Values() contact.ValueRepository
	// Outbox returns the outbox repository scoped to the transaction
	Outbox() shared.OutboxRepository
}

// NoOpTransactionScope runs the function without a real transaction; used in
// unit tests where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	ContactDetailsRepo contact.ContactDetailsRepository
	ValuesRepo         contact.ValueRepository
	OutboxRepo         shared.OutboxRepository
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ContactDetails returns the aggregate repository
func (s *NoOpTransactionScope) ContactDetails() contact.ContactDetailsRepository {
	return s.ContactDetailsRepo
}

// Values returns the value repository
func (s *NoOpTransactionScope) Values() contact.ValueRepository {
	return s.ValuesRepo
}

// Outbox returns the outbox repository
func (s *NoOpTransactionScope) Outbox() shared.OutboxRepository {
	return s.OutboxRepo
}
