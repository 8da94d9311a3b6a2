package store

import "github.com/dmitrijs2005/trackmydeposits/internal/client/models"

// Action is a state transition request. The set of actions is closed: only
// types in this package implement it.
type Action interface {
	isAction()
}

type action struct{}

func (action) isAction() {}

// Auth.
type (
	AuthStarted       struct{ action }
	UserAuthenticated struct {
		action
		User models.User
	}
	AuthFailed struct{ action }

	UserLoadStarted   struct{ action }
	UserLoadSucceeded struct {
		action
		User models.User
	}
	UserLoadFailed struct{ action }

	LogoutStarted   struct{ action }
	LogoutSucceeded struct{ action }
	LogoutFailed    struct{ action }

	UserUpdateStarted   struct{ action }
	UserUpdateSucceeded struct {
		action
		User models.User
	}
	UserUpdateFailed struct{ action }

	PasswordUpdateStarted   struct{ action }
	PasswordUpdateSucceeded struct{ action }
	PasswordUpdateFailed    struct{ action }
)

// Alerts.
type (
	AlertAdded struct {
		action
		Alert models.Alert
	}
	AlertRemoved struct {
		action
		ID string
	}
)

// Deposits.
type (
	DepositsLoadStarted   struct{ action }
	DepositsLoadSucceeded struct {
		action
		Deposits []models.Deposit
	}
	DepositsLoadFailed struct{ action }

	DepositCreateStarted   struct{ action }
	DepositCreateSucceeded struct {
		action
		Deposit models.Deposit
	}
	DepositCreateFailed struct{ action }

	DepositUpdateStarted   struct{ action }
	DepositUpdateSucceeded struct {
		action
		Deposit models.Deposit
	}
	DepositUpdateFailed struct{ action }

	// DepositDeleteStarted removes the record right away.
	DepositDeleteStarted struct {
		action
		ID int64
	}
	DepositDeleteSucceeded struct {
		action
		ID int64
	}
	// DepositDeleteFailed puts Deposit back at the front of the list.
	DepositDeleteFailed struct {
		action
		Deposit models.Deposit
	}

	DepositsExportStarted  struct{ action }
	DepositsExportFinished struct{ action }

	RowsPerPageSet struct {
		action
		RowsPerPage int
	}
	CurrentPageSet struct {
		action
		Page int
	}

	AddDialogOpened struct{ action }
	AddDialogClosed struct{ action }
)
