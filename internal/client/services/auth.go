package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/api"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/forms"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
)

// AuthService covers the session and the signed-in user's account.
//
//   - RestoreSession: resume a session from the cookie; failure is silent.
//   - Login / Signup: authenticate; failure raises an error alert.
//   - Logout: end the session; failure is silent.
//   - UpdateProfile / UpdatePassword: edit the account with success and
//     error alerts.
type AuthService interface {
	RestoreSession(ctx context.Context) error
	Login(ctx context.Context, f forms.SignIn) error
	Signup(ctx context.Context, f forms.SignUp) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, f forms.Profile) error
	UpdatePassword(ctx context.Context, f forms.PasswordChange) error
}

type authService struct {
	client api.Client
	st     Store
	alerts Notifier
	log    logging.Logger
}

// NewAuthService wires an AuthService.
func NewAuthService(client api.Client, st Store, alerts Notifier, log logging.Logger) AuthService {
	return &authService{client: client, st: st, alerts: alerts, log: log.With("module", "auth")}
}

func (a *authService) RestoreSession(ctx context.Context) error {
	a.st.Dispatch(store.UserLoadStarted{})
	u, err := a.client.LoadUser(ctx)
	if err != nil {
		a.st.Dispatch(store.UserLoadFailed{})
		a.log.Debug(ctx, "no session to restore", "error", err)
		return fmt.Errorf("restore session: %w", err)
	}
	a.st.Dispatch(store.UserLoadSucceeded{User: u})
	return nil
}

func (a *authService) Login(ctx context.Context, f forms.SignIn) error {
	if err := forms.Validate(f); err != nil {
		return err
	}

	a.st.Dispatch(store.AuthStarted{})
	u, err := a.client.SignIn(ctx, api.Credentials{Email: f.Email, Password: f.Password})
	if err != nil {
		a.st.Dispatch(store.AuthFailed{})
		a.alerts.Error(api.MessageOf(err))
		a.log.Warn(ctx, "login failed", "email", f.Email, "error", err)
		return fmt.Errorf("login: %w", err)
	}
	a.st.Dispatch(store.UserAuthenticated{User: u})
	return nil
}

func (a *authService) Signup(ctx context.Context, f forms.SignUp) error {
	if err := forms.Validate(f); err != nil {
		return err
	}

	a.st.Dispatch(store.AuthStarted{})
	u, err := a.client.SignUp(ctx, api.Registration{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Email:           f.Email,
		Password:        f.Password,
		PasswordConfirm: f.PasswordConfirm,
	})
	if err != nil {
		a.st.Dispatch(store.AuthFailed{})
		a.alerts.Error(api.MessageOf(err))
		a.log.Warn(ctx, "signup failed", "email", f.Email, "error", err)
		return fmt.Errorf("signup: %w", err)
	}
	a.st.Dispatch(store.UserAuthenticated{User: u})
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.st.Dispatch(store.LogoutStarted{})
	if err := a.client.LogOut(ctx); err != nil {
		a.st.Dispatch(store.LogoutFailed{})
		a.log.Debug(ctx, "logout failed", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	a.st.Dispatch(store.LogoutSucceeded{})
	return nil
}

func (a *authService) UpdateProfile(ctx context.Context, f forms.Profile) error {
	if err := forms.Validate(f); err != nil {
		return err
	}

	a.st.Dispatch(store.UserUpdateStarted{})
	u, err := a.client.UpdateUser(ctx, f.User())
	if err != nil {
		a.st.Dispatch(store.UserUpdateFailed{})
		a.alerts.Error(api.MessageOf(err))
		return fmt.Errorf("update profile: %w", err)
	}
	a.st.Dispatch(store.UserUpdateSucceeded{User: u})
	a.alerts.Success("User details updated")
	return nil
}

// UpdatePassword leaves the stored user as it is; the server's echo of the
// user is ignored.
func (a *authService) UpdatePassword(ctx context.Context, f forms.PasswordChange) error {
	if err := forms.Validate(f); err != nil {
		return err
	}

	a.st.Dispatch(store.PasswordUpdateStarted{})
	_, err := a.client.UpdatePassword(ctx, api.PasswordChange{
		CurrentPassword:    f.CurrentPassword,
		NewPassword:        f.NewPassword,
		NewPasswordConfirm: f.NewPasswordConfirm,
	})
	if err != nil {
		a.st.Dispatch(store.PasswordUpdateFailed{})
		a.alerts.Error(api.MessageOf(err))
		return fmt.Errorf("update password: %w", err)
	}
	a.st.Dispatch(store.PasswordUpdateSucceeded{})
	a.alerts.Success("Password updated")
	return nil
}
