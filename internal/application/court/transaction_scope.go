package court

import (
	"context"

	"github.com/registers/backend/internal/domain/court"
	"github.com/registers/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the court repositories.
// Every register mutation runs inside exactly one scope execution: the
// aggregate write and its outbox entries commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the court repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Courts returns the aggregate repository scoped to the transaction
	Courts() court.Repository
	// Outbox returns the outbox repository scoped to the transaction
	Outbox() shared.OutboxRepository
}

// NoOpTransactionScope runs the function without a real transaction; used in
// unit tests where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	CourtRepo  court.Repository
	OutboxRepo shared.OutboxRepository
}

// Execute runs the function against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Courts returns the aggregate repository
func (s *NoOpTransactionScope) Courts() court.Repository {
	return s.CourtRepo
}

// Outbox returns the outbox repository
func (s *NoOpTransactionScope) Outbox() shared.OutboxRepository {
	return s.OutboxRepo
}
