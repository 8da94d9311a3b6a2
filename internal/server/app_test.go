package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/config"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/httpapi"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.EndpointAddr = "127.0.0.1:0"
	return c
}

func stubObjectStore(t *testing.T, err error) {
	t.Helper()
	orig := newObjectStore
	newObjectStore = func(context.Context, *config.Config) (services.ObjectStore, error) { return nil, err }
	t.Cleanup(func() { newObjectStore = orig })
}

// migrationsFail is a manager whose migrations never succeed.
type migrationsFail struct {
	*repomanager.InMemoryRepositoryManager
	closed bool
}

func (m *migrationsFail) RunMigrations(context.Context) error { return errors.New("dirty schema") }
func (m *migrationsFail) Close() error {
	m.closed = true
	return nil
}

func TestNewApp_InMemory(t *testing.T) {
	stubObjectStore(t, errors.New("no bucket"))

	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	require.NotNil(t, app.limiter)
	defer app.limiter.Stop()

	srv := httptest.NewServer(httpapi.NewRouter(app.routes))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewApp_RateLimitDisabled(t *testing.T) {
	stubObjectStore(t, errors.New("no bucket"))
	c := memoryConfig()
	c.RateLimit = 0

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, app.limiter)
	assert.Nil(t, app.routes.Limiter)
}

func TestNewApp_PostgresErrors(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })

	c := memoryConfig()
	c.DatabaseDSN = "postgres://nowhere"

	openPostgres = func(context.Context, string) (repomanager.RepositoryManager, error) {
		return nil, errors.New("connection refused")
	}
	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	m := &migrationsFail{InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager()}
	openPostgres = func(context.Context, string) (repomanager.RepositoryManager, error) { return m, nil }
	_, err = NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty schema")
	assert.True(t, m.closed)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	stubObjectStore(t, errors.New("no bucket"))

	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
