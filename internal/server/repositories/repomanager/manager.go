// Package repomanager vends the repositories for one storage backend and
// owns its lifecycle (migrations, transactions, close).
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/deposits"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/users"
)

// TxFunc receives repositories bound to one transaction.
type TxFunc func(ctx context.Context, users users.Repository, deposits deposits.Repository) error

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Deposits() deposits.Repository
	// WithTx runs fn atomically: on error nothing fn wrote is kept.
	WithTx(ctx context.Context, fn TxFunc) error
	Close() error
}
