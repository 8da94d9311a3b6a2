package store

import (
	"slices"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
)

// Reduce applies a to s and returns the next state. It never mutates s:
// slices are copied before they are changed.
//
// After the slice reducers run, the pagination cursor is clamped so that it
// always points at an existing page.
func Reduce(s State, a Action) State {
	s.Auth = reduceAuth(s.Auth, a)
	s.Alerts = reduceAlerts(s.Alerts, a)
	s.Deposits = clampPage(reduceDeposits(s.Deposits, a))
	return s
}

func reduceAuth(s AuthState, a Action) AuthState {
	switch a := a.(type) {
	case AuthStarted:
		s.IsLoading = true
		s.Failed = false
	case UserAuthenticated:
		s.User = a.User
		s.IsLoading = false
		s.IsAuthenticated = true
		s.Failed = false
	case AuthFailed:
		s.IsLoading = false
		s.IsAuthenticated = false
		s.Failed = true

	case UserLoadStarted:
		s.IsLoadingFromToken = true
	case UserLoadSucceeded:
		s.User = a.User
		s.IsLoadingFromToken = false
		s.IsAuthenticated = true
	case UserLoadFailed:
		s.User = models.User{}
		s.IsLoadingFromToken = false
		s.IsAuthenticated = false

	case LogoutStarted:
		s.IsLoading = true
	case LogoutSucceeded:
		s.User = models.User{}
		s.IsLoading = false
		s.IsAuthenticated = false
		s.Failed = false
	case LogoutFailed:
		s.IsLoading = false

	case UserUpdateStarted:
		s.IsUpdatingUser = true
	case UserUpdateSucceeded:
		s.User = a.User
		s.IsUpdatingUser = false
	case UserUpdateFailed:
		s.IsUpdatingUser = false

	case PasswordUpdateStarted:
		s.IsUpdatingPassword = true
	case PasswordUpdateSucceeded, PasswordUpdateFailed:
		s.IsUpdatingPassword = false
	}
	return s
}

func reduceAlerts(s []models.Alert, a Action) []models.Alert {
	switch a := a.(type) {
	case AlertAdded:
		next := make([]models.Alert, 0, MaxAlerts)
		if len(s) >= MaxAlerts {
			// oldest first out
			s = s[len(s)-MaxAlerts+1:]
		}
		next = append(next, s...)
		return append(next, a.Alert)
	case AlertRemoved:
		i := slices.IndexFunc(s, func(x models.Alert) bool { return x.ID == a.ID })
		if i < 0 {
			return s
		}
		return slices.Delete(slices.Clone(s), i, i+1)
	}
	return s
}

func reduceDeposits(s DepositsState, a Action) DepositsState {
	switch a := a.(type) {
	case DepositsLoadStarted:
		s.IsLoading = true
	case DepositsLoadSucceeded:
		s.Data = slices.Clone(a.Deposits)
		if s.Data == nil {
			s.Data = []models.Deposit{}
		}
		s.IsLoading = false
	case DepositsLoadFailed:
		s.IsLoading = false

	case DepositCreateStarted:
		s.IsAddingDeposit = true
	case DepositCreateSucceeded:
		s.Data = prepend(s.Data, a.Deposit)
		s.IsAddingDeposit = false
		s.IsAddDialogOpen = false
	case DepositCreateFailed:
		s.IsAddingDeposit = false

	case DepositUpdateStarted:
		s.IsUpdatingDeposit = true
	case DepositUpdateSucceeded:
		if i := s.indexOf(a.Deposit.ID); i >= 0 {
			s.Data = slices.Clone(s.Data)
			s.Data[i] = a.Deposit
		}
		s.IsUpdatingDeposit = false
	case DepositUpdateFailed:
		s.IsUpdatingDeposit = false

	case DepositDeleteStarted:
		if i := s.indexOf(a.ID); i >= 0 {
			s.Data = slices.Delete(slices.Clone(s.Data), i, i+1)
		}
		s.IsDeletingDeposit = true
	case DepositDeleteSucceeded:
		s.IsDeletingDeposit = false
	case DepositDeleteFailed:
		s.Data = prepend(s.Data, a.Deposit)
		s.IsDeletingDeposit = false

	case DepositsExportStarted:
		s.IsExporting = true
	case DepositsExportFinished:
		s.IsExporting = false

	case RowsPerPageSet:
		if ValidRowsPerPage(a.RowsPerPage) {
			s.RowsPerPage = a.RowsPerPage
		}
	case CurrentPageSet:
		s.CurrentPage = a.Page

	case AddDialogOpened:
		s.IsAddDialogOpen = true
	case AddDialogClosed:
		s.IsAddDialogOpen = false

	case LogoutSucceeded:
		s.Data = []models.Deposit{}
		s.CurrentPage = 0
	}
	return s
}

func prepend(data []models.Deposit, d models.Deposit) []models.Deposit {
	next := make([]models.Deposit, 0, len(data)+1)
	next = append(next, d)
	return append(next, data...)
}

func clampPage(s DepositsState) DepositsState {
	if s.CurrentPage < 0 {
		s.CurrentPage = 0
	}
	if maxPage := s.PageCount(); maxPage > 0 && s.CurrentPage >= maxPage {
		s.CurrentPage = maxPage - 1
	}
	return s
}
