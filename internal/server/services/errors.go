// Package services contains the server-side business logic: accounts and
// sessions (UserService) and deposits with CSV export (DepositService).
package services

import (
	"errors"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
)

// Error is a failure whose Message can be shown to API callers. Kind is
// one of the common sentinels and decides the HTTP status.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrInvalidCredentials = newError(common.ErrorUnauthorized, "Incorrect email or password")
	ErrNotLoggedIn        = newError(common.ErrorUnauthorized, "You are not logged in")
	ErrSessionExpired     = newError(common.ErrTokenExpired, "Your session has expired, please log in again")
	ErrSessionRevoked     = newError(common.ErrTokenRevoked, "Password was changed recently, please log in again")
	ErrWrongPassword      = newError(common.ErrorUnauthorized, "Current password is incorrect")
	ErrEmailTaken         = newError(common.ErrorAlreadyExists, "Email is already in use")
	ErrPasswordTooShort   = newError(common.ErrorValidation, "Password must be at least 8 characters")
	ErrPasswordMismatch   = newError(common.ErrorValidation, "Passwords do not match")
	ErrEndBeforeStart     = newError(common.ErrorValidation, "End date has to be after start date")
	ErrDepositNotFound    = newError(common.ErrorNotFound, "Deposit not found")
	ErrUserNotFound       = newError(common.ErrorNotFound, "User not found")
	ErrExportUnavailable  = newError(common.ErrorInternal, "Export is not configured")
	ErrExportFailed       = newError(common.ErrorInternal, "Export failed, please try again later")
)

// MessageOf returns the caller-safe message of err, or "" when err is not
// an *Error.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
