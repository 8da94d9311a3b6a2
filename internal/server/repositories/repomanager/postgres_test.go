package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/deposits"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestFactories_ReturnPostgresRepos(t *testing.T) {
	db, _ := newDB(t)
	m := NewPostgresRepositoryManager(db)

	var _ RepositoryManager = m
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
	assert.IsType(t, &deposits.PostgresRepository{}, m.Deposits())
}

func TestRunMigrations(t *testing.T) {
	db, _ := newDB(t)
	m := NewPostgresRepositoryManager(db)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		assert.Same(t, db, got)
		assert.Equal(t, ".", dir)
		return nil
	}
	require.NoError(t, m.RunMigrations(context.Background()))

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	err := m.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	db, mock := newDB(t)
	m := NewPostgresRepositoryManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM deposits`).WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.WithTx(context.Background(), func(ctx context.Context, u users.Repository, d deposits.Repository) error {
		return d.Delete(ctx, 2, 1)
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = m.WithTx(context.Background(), func(ctx context.Context, u users.Repository, d deposits.Repository) error {
		return errors.New("abort")
	})
	assert.EqualError(t, err, "abort")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres(t *testing.T) {
	db, mock := newDB(t)

	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })

	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://x", dsn)
		return db, nil
	}
	mock.ExpectPing()

	m, err := OpenPostgres(context.Background(), "postgres://x")
	require.NoError(t, err)
	assert.NotNil(t, m)

	mock.ExpectPing().WillReturnError(errors.New("unreachable"))
	mock.ExpectClose()
	_, err = OpenPostgres(context.Background(), "postgres://x")
	assert.ErrorContains(t, err, "db ping error")

	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	_, err = OpenPostgres(context.Background(), "postgres://x")
	assert.ErrorContains(t, err, "db open error")
}

func TestInMemoryManager(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	var _ RepositoryManager = m

	require.NoError(t, m.RunMigrations(context.Background()))
	assert.Same(t, m.Users(), m.Users())

	called := false
	err := m.WithTx(context.Background(), func(ctx context.Context, u users.Repository, d deposits.Repository) error {
		called = true
		assert.Same(t, m.Deposits(), d)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, m.Close())
}
