// Package users persists accounts.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
)

// Repository stores users. Emails are unique case-insensitively: Create and
// UpdateProfile return common.ErrorAlreadyExists on a clash, lookups of
// missing users return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, hash []byte, changedAt time.Time) error
}
