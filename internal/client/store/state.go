package store

import (
	"slices"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
)

// MaxAlerts bounds the number of simultaneously visible alerts.
const MaxAlerts = 3

// DefaultRowsPerPage is the initial page size of the deposits table.
const DefaultRowsPerPage = 10

// RowsPerPageOptions lists the allowed page sizes.
var RowsPerPageOptions = []int{5, 10, 25}

// ValidRowsPerPage reports whether n is one of RowsPerPageOptions.
func ValidRowsPerPage(n int) bool {
	return slices.Contains(RowsPerPageOptions, n)
}

// AuthPhase is the coarse auth state derived from AuthState flags.
type AuthPhase int

const (
	PhaseUnauthenticated AuthPhase = iota
	PhaseAuthenticating
	PhaseAuthenticated
	PhaseAuthFailed
)

func (p AuthPhase) String() string {
	switch p {
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAuthFailed:
		return "auth failed"
	default:
		return "unauthenticated"
	}
}

// AuthState is the auth slice.
type AuthState struct {
	User               models.User
	IsLoading          bool
	IsLoadingFromToken bool
	IsAuthenticated    bool
	IsUpdatingUser     bool
	IsUpdatingPassword bool
	// Failed is set by a rejected login or signup and cleared by the next
	// attempt.
	Failed bool
}

// Phase derives the state-machine position from the flags.
func (a AuthState) Phase() AuthPhase {
	switch {
	case a.IsAuthenticated:
		return PhaseAuthenticated
	case a.IsLoading:
		return PhaseAuthenticating
	case a.Failed:
		return PhaseAuthFailed
	default:
		return PhaseUnauthenticated
	}
}

// DepositsState is the deposits slice.
type DepositsState struct {
	Data        []models.Deposit
	CurrentPage int
	RowsPerPage int

	IsLoading         bool
	IsAddingDeposit   bool
	IsUpdatingDeposit bool
	IsDeletingDeposit bool
	IsExporting       bool
	IsAddDialogOpen   bool
}

// PageCount is ceil(len(Data) / RowsPerPage).
func (d DepositsState) PageCount() int {
	if d.RowsPerPage <= 0 {
		return 0
	}
	return (len(d.Data) + d.RowsPerPage - 1) / d.RowsPerPage
}

// Page returns the records visible on the current page.
func (d DepositsState) Page() []models.Deposit {
	if d.RowsPerPage <= 0 {
		return nil
	}
	start := d.CurrentPage * d.RowsPerPage
	if start >= len(d.Data) || start < 0 {
		return nil
	}
	end := min(start+d.RowsPerPage, len(d.Data))
	return d.Data[start:end]
}

// Find returns the record with the given id.
func (d DepositsState) Find(id int64) (models.Deposit, bool) {
	i := d.indexOf(id)
	if i < 0 {
		return models.Deposit{}, false
	}
	return d.Data[i], true
}

func (d DepositsState) indexOf(id int64) int {
	return slices.IndexFunc(d.Data, func(x models.Deposit) bool { return x.ID == id })
}

// State is the whole application state tree.
type State struct {
	Auth     AuthState
	Alerts   []models.Alert
	Deposits DepositsState
}

// Initial returns the state the dashboard starts in: no user, a session
// restore pending, no alerts and an empty table.
func Initial() State {
	return State{
		Auth:     AuthState{IsLoadingFromToken: true},
		Alerts:   []models.Alert{},
		Deposits: DepositsState{Data: []models.Deposit{}, RowsPerPage: DefaultRowsPerPage},
	}
}

func (s State) clone() State {
	s.Alerts = slices.Clone(s.Alerts)
	s.Deposits.Data = slices.Clone(s.Deposits.Data)
	return s
}
