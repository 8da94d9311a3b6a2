// Package deposits persists deposit records. Every lookup is scoped by the
// owning user: a deposit owned by someone else is indistinguishable from a
// missing one (common.ErrorNotFound).
package deposits

import (
	"context"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, d *models.Deposit) (*models.Deposit, error)
	// ListByUser returns the user's deposits, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Deposit, error)
	Get(ctx context.Context, userID, id int64) (*models.Deposit, error)
	Update(ctx context.Context, d *models.Deposit) (*models.Deposit, error)
	Delete(ctx context.Context, userID, id int64) error
}
