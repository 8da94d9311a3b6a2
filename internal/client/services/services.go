// Package services drives the dashboard's operations: each call validates
// its input, records the started/succeeded/failed phases in the store, talks
// to the backend and raises user-facing alerts.
//
// Validation failures return *forms.ValidationError and touch nothing else.
// Backend failures raise an error alert and are also returned, wrapped, so
// callers can branch on them; the alert is the user-facing report.
package services

import (
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
)

// Notifier raises alerts. *alerts.Bus implements it.
type Notifier interface {
	Error(message string) string
	Success(message string) string
}

// Store is the part of *store.Store the services use.
type Store interface {
	Dispatch(store.Action)
	State() store.State
	RemoveDeposit(id int64) (*store.Removal, bool)
}
