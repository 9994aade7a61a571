package persistence

import (
	"context"
)

// UnitOfWork scopes repository calls to one database transaction.
// Repositories resolve the active transaction from the context returned by Begin.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context.
	// Rolling back an already finished transaction is not an error.
	Rollback(ctx context.Context) error
}
