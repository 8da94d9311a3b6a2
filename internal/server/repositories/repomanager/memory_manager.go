package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/deposits"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. Data is
// lost on exit.
type InMemoryRepositoryManager struct {
	txMu     sync.Mutex
	users    *users.MemoryRepository
	deposits *deposits.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		deposits: deposits.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Deposits() deposits.Repository { return m.deposits }

// WithTx serializes transactions against each other. Writes are not rolled
// back on error, so fn must do its checks before its first write.
func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.users, m.deposits)
}

func (m *InMemoryRepositoryManager) Close() error { return nil }
