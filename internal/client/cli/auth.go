package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// askDefault shows the current value and keeps it when the answer is empty.
func (a *App) askDefault(prompt, current string) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := a.ask(prompt)
	if err != nil || v == "" {
		return current, err
	}
	return v, nil
}

func (a *App) askPassword(prompt string) (string, error) {
	return getPassword(a.reader, prompt, a.out)
}

// Signup prompts for the registration form. On success the deposit table is
// loaded for the new account.
func (a *App) Signup(ctx context.Context) error {
	if a.st.State().Auth.IsLoading {
		fmt.Fprintln(a.out, "Already signing in, please wait")
		return nil
	}

	var (
		f   forms.SignUp
		err error
	)
	if f.FirstName, err = a.ask("First name"); err != nil {
		return err
	}
	if f.LastName, err = a.ask("Last name"); err != nil {
		return err
	}
	if f.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if f.Password, err = a.askPassword("Password"); err != nil {
		return err
	}
	if f.PasswordConfirm, err = a.askPassword("Confirm password"); err != nil {
		return err
	}

	if err := a.auth.Signup(ctx, f); err != nil {
		reportValidation(a.out, err)
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s\n", a.st.State().Auth.User.FullName())
	return a.deposits.Load(ctx)
}

// Login prompts for email and password.
func (a *App) Login(ctx context.Context) error {
	if a.st.State().Auth.IsLoading {
		fmt.Fprintln(a.out, "Already signing in, please wait")
		return nil
	}
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in, type 'logout' first")
		return nil
	}

	var (
		f   forms.SignIn
		err error
	)
	if f.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if f.Password, err = a.askPassword("Password"); err != nil {
		return err
	}

	if err := a.auth.Login(ctx, f); err != nil {
		reportValidation(a.out, err)
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s\n", a.st.State().Auth.User.FullName())
	return a.deposits.Load(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Account shows the signed-in user.
func (a *App) Account(ctx context.Context) error {
	u := a.st.State().Auth.User
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", u.FullName(), u.Email)
	return nil
}

// Profile edits first name, last name and email. Empty answers keep the
// current value.
func (a *App) Profile(ctx context.Context) error {
	s := a.st.State().Auth
	if s.IsUpdatingUser {
		fmt.Fprintln(a.out, "Profile update in progress, please wait")
		return nil
	}

	f := forms.ProfileOf(s.User)
	var err error
	if f.FirstName, err = a.askDefault("First name", f.FirstName); err != nil {
		return err
	}
	if f.LastName, err = a.askDefault("Last name", f.LastName); err != nil {
		return err
	}
	if f.Email, err = a.askDefault("Email", f.Email); err != nil {
		return err
	}

	err = a.auth.UpdateProfile(ctx, f)
	reportValidation(a.out, err)
	return err
}

func (a *App) Password(ctx context.Context) error {
	if a.st.State().Auth.IsUpdatingPassword {
		fmt.Fprintln(a.out, "Password update in progress, please wait")
		return nil
	}

	var (
		f   forms.PasswordChange
		err error
	)
	if f.CurrentPassword, err = a.askPassword("Current password"); err != nil {
		return err
	}
	if f.NewPassword, err = a.askPassword("New password"); err != nil {
		return err
	}
	if f.NewPasswordConfirm, err = a.askPassword("Confirm new password"); err != nil {
		return err
	}

	err = a.auth.UpdatePassword(ctx, f)
	reportValidation(a.out, err)
	return err
}
