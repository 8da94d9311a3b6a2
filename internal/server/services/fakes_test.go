package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/config"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/deposits"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/users"
)

var errDB = errors.New("db down")

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour, ExportURLValidity: 15 * time.Minute}
}

func newUserSvc(t *testing.T, m repomanager.RepositoryManager) *UserService {
	t.Helper()
	return NewUserService(m, testConfig(), logging.Nop())
}

// brokenRepos fails every call.
type brokenRepos struct{}

func (brokenRepos) RunMigrations(context.Context) error { return errDB }
func (brokenRepos) Users() users.Repository             { return brokenUsers{} }
func (brokenRepos) Deposits() deposits.Repository       { return brokenDeposits{} }
func (brokenRepos) Close() error                        { return nil }
func (brokenRepos) WithTx(ctx context.Context, fn repomanager.TxFunc) error {
	return fn(ctx, brokenUsers{}, brokenDeposits{})
}

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errDB }
func (brokenUsers) GetByEmail(context.Context, string) (*models.User, error)  { return nil, errDB }
func (brokenUsers) GetByID(context.Context, int64) (*models.User, error)      { return nil, errDB }
func (brokenUsers) UpdateProfile(context.Context, *models.User) (*models.User, error) {
	return nil, errDB
}
func (brokenUsers) UpdatePassword(context.Context, int64, []byte, time.Time) error { return errDB }

type brokenDeposits struct{}

func (brokenDeposits) Create(context.Context, *models.Deposit) (*models.Deposit, error) {
	return nil, errDB
}
func (brokenDeposits) ListByUser(context.Context, int64) ([]*models.Deposit, error) {
	return nil, errDB
}
func (brokenDeposits) Get(context.Context, int64, int64) (*models.Deposit, error) { return nil, errDB }
func (brokenDeposits) Update(context.Context, *models.Deposit) (*models.Deposit, error) {
	return nil, errDB
}
func (brokenDeposits) Delete(context.Context, int64, int64) error { return errDB }

// memStore is an ObjectStore in memory.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
	signErr error
	lastTTL time.Duration
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = append([]byte(nil), body...)
	m.types[key] = contentType
	return nil
}

func (m *memStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.signErr != nil {
		return "", m.signErr
	}
	m.lastTTL = ttl
	return "https://files.example/" + key + "?sig=1", nil
}
