package api

import (
	"context"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup request body.
type Registration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// PasswordChange is the update-password request body.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	NewPasswordConfirm string `json:"newPasswordConfirm"`
}

// Client is the backend as seen by the dashboard.
type Client interface {
	SignIn(ctx context.Context, c Credentials) (models.User, error)
	SignUp(ctx context.Context, r Registration) (models.User, error)
	LogOut(ctx context.Context) error
	LoadUser(ctx context.Context) (models.User, error)
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
	UpdatePassword(ctx context.Context, p PasswordChange) (models.User, error)

	LoadDeposits(ctx context.Context) ([]models.Deposit, error)
	CreateDeposit(ctx context.Context, in models.DepositInput) (models.Deposit, error)
	UpdateDeposit(ctx context.Context, d models.Deposit) (models.Deposit, error)
	DeleteDeposit(ctx context.Context, id int64) error
	ExportDeposits(ctx context.Context) (models.ExportLink, error)
}
