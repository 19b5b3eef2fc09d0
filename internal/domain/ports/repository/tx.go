package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. The concrete type is infra-defined
// (pgx.Tx for Postgres); repositories must gracefully accept nil for the
// non-transactional path.
type Tx interface{}

// NoTX is passed by callers that want the plain pool path.
var NoTX Tx

// TransactionManager executes a function inside a database transaction,
// passing the transaction handle to repositories via tx. Keeps use-case
// interfaces clean: no storage types leak out of the ports.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
