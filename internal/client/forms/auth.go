package forms

import (
	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
)

// SignIn is the login form.
type SignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (SignIn) message(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		return emailMessage(fe)
	case "password":
		if fe.Tag() == "required" {
			return "Password is required"
		}
		return "Password should be of minimum 8 characters length"
	}
	return genericMessage(fe)
}

// SignUp is the registration form.
type SignUp struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

func (f SignUp) message(fe validator.FieldError) string {
	switch fe.Field() {
	case "firstName", "lastName", "email":
		return profileMessage(fe)
	case "password":
		return SignIn{}.message(fe)
	case "passwordConfirm":
		return confirmMessage(fe)
	}
	return genericMessage(fe)
}

// Profile edits the signed-in user's details.
type Profile struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// ProfileOf prefills the form from u.
func ProfileOf(u models.User) Profile {
	return Profile{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// User converts the form to the model sent to the server.
func (f Profile) User() models.User {
	return models.User{FirstName: f.FirstName, LastName: f.LastName, Email: f.Email}
}

func (Profile) message(fe validator.FieldError) string {
	return profileMessage(fe)
}

// PasswordChange replaces the signed-in user's password.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

func (PasswordChange) message(fe validator.FieldError) string {
	switch fe.Field() {
	case "currentPassword":
		return "Current password is required"
	case "newPassword":
		if fe.Tag() == "required" {
			return "New password is required"
		}
		return "Password length should be of minimum 8 characters"
	case "newPasswordConfirm":
		return confirmMessage(fe)
	}
	return genericMessage(fe)
}

func profileMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "firstName":
		return "First name is required"
	case "lastName":
		return "Last name is required"
	case "email":
		return emailMessage(fe)
	}
	return genericMessage(fe)
}

func emailMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "Email is required"
	}
	return "Enter a valid email"
}

func confirmMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "Password confirm is required"
	}
	return "Passwords don't match"
}

func genericMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "Field is required"
	}
	return "Invalid value"
}
