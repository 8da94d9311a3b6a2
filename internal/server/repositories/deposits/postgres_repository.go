package deposits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/dbx"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
)

const selectColumns = `id, user_id, bank_name, account_number, amount, tax, interest,
		 start_date, end_date, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Deposit) (*models.Deposit, error) {
	query :=
		`INSERT INTO deposits (user_id, bank_name, account_number, amount, tax, interest, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		d.UserID, d.BankName, d.AccountNumber, d.Amount, d.Tax, d.Interest, d.StartDate, d.EndDate).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Deposit, error) {
	query :=
		`SELECT ` + selectColumns + `
		 FROM deposits
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Deposit, 0)
	for rows.Next() {
		d := &models.Deposit{}
		if err := scan(rows, d); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Deposit, error) {
	query :=
		`SELECT ` + selectColumns + `
		 FROM deposits
		 WHERE id = $1 AND user_id = $2`

	d := &models.Deposit{}
	if err := scan(r.db.QueryRowContext(ctx, query, id, userID), d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *PostgresRepository) Update(ctx context.Context, d *models.Deposit) (*models.Deposit, error) {
	query :=
		`UPDATE deposits
		 SET bank_name = $3, account_number = $4, amount = $5, tax = $6, interest = $7,
		     start_date = $8, end_date = $9, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		d.ID, d.UserID, d.BankName, d.AccountNumber, d.Amount, d.Tax, d.Interest, d.StartDate, d.EndDate).
		Scan(&d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM deposits WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner, d *models.Deposit) error {
	return s.Scan(&d.ID, &d.UserID, &d.BankName, &d.AccountNumber, &d.Amount, &d.Tax, &d.Interest,
		&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt)
}
