package repositories

import "context"

// TransactionManager runs a function inside a single database transaction.
// The transaction is carried in the returned context; repository methods
// invoked with that context route their queries through it. The
// implementation commits when fn returns nil and rolls back on error or
// panic, releasing the transaction on every exit path.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
