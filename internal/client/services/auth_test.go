package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/api"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/forms"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
)

var ada = models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

func newAuth(c *fakeClient) (AuthService, *store.Store, *fakeNotifier) {
	st := store.New(store.Initial())
	n := &fakeNotifier{}
	return NewAuthService(c, st, n, logging.Nop()), st, n
}

func TestAuth_RestoreSession(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := &fakeClient{loadUser: func() (models.User, error) { return ada, nil }}
		svc, st, n := newAuth(c)

		require.NoError(t, svc.RestoreSession(context.Background()))

		s := st.State().Auth
		assert.Equal(t, ada, s.User)
		assert.True(t, s.IsAuthenticated)
		assert.False(t, s.IsLoadingFromToken)
		assert.Empty(t, n.All())
	})

	t.Run("failure is silent", func(t *testing.T) {
		c := &fakeClient{loadUser: func() (models.User, error) {
			return models.User{}, &api.APIError{StatusCode: 401, Message: "You are not logged in"}
		}}
		svc, st, n := newAuth(c)

		err := svc.RestoreSession(context.Background())

		assert.ErrorIs(t, err, api.ErrUnauthorized)
		s := st.State().Auth
		assert.False(t, s.IsLoadingFromToken)
		assert.False(t, s.IsAuthenticated)
		assert.Empty(t, n.All())
		assert.Empty(t, st.State().Alerts)
	})
}

func TestAuth_Login(t *testing.T) {
	t.Run("short password never reaches the server", func(t *testing.T) {
		c := &fakeClient{}
		svc, st, n := newAuth(c)

		var phases []store.AuthPhase
		st.Subscribe(func(s store.State) { phases = append(phases, s.Auth.Phase()) })

		err := svc.Login(context.Background(), forms.SignIn{Email: "ada@example.com", Password: "short"})

		var verr *forms.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Password should be of minimum 8 characters length", verr.Fields["password"])
		assert.Empty(t, c.Calls())
		assert.Empty(t, phases)
		assert.Empty(t, n.All())
		assert.Equal(t, store.PhaseUnauthenticated, st.State().Auth.Phase())
	})

	t.Run("ok", func(t *testing.T) {
		var got api.Credentials
		c := &fakeClient{signIn: func(cr api.Credentials) (models.User, error) {
			got = cr
			return ada, nil
		}}
		svc, st, _ := newAuth(c)

		var phases []store.AuthPhase
		st.Subscribe(func(s store.State) { phases = append(phases, s.Auth.Phase()) })

		require.NoError(t, svc.Login(context.Background(), forms.SignIn{Email: ada.Email, Password: "password1"}))

		assert.Equal(t, api.Credentials{Email: ada.Email, Password: "password1"}, got)
		assert.Equal(t, []store.AuthPhase{store.PhaseAuthenticating, store.PhaseAuthenticated}, phases)
		assert.Equal(t, ada, st.State().Auth.User)
	})

	t.Run("server rejects", func(t *testing.T) {
		c := &fakeClient{signIn: func(api.Credentials) (models.User, error) {
			return models.User{}, &api.APIError{StatusCode: 401, Message: "Incorrect email or password"}
		}}
		svc, st, n := newAuth(c)

		err := svc.Login(context.Background(), forms.SignIn{Email: ada.Email, Password: "password1"})

		require.Error(t, err)
		assert.Equal(t, store.PhaseAuthFailed, st.State().Auth.Phase())
		assert.Equal(t, []raised{{models.SeverityError, "Incorrect email or password"}}, n.All())
	})

	t.Run("transport failure uses fallback text", func(t *testing.T) {
		c := &fakeClient{signIn: func(api.Credentials) (models.User, error) {
			return models.User{}, api.ErrUnavailable
		}}
		svc, _, n := newAuth(c)

		_ = svc.Login(context.Background(), forms.SignIn{Email: ada.Email, Password: "password1"})

		assert.Equal(t, []raised{{models.SeverityError, api.UnknownErrorMessage}}, n.All())
	})
}

func TestAuth_Signup(t *testing.T) {
	c := &fakeClient{signUp: func(r api.Registration) (models.User, error) {
		return models.User{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}, nil
	}}
	svc, st, _ := newAuth(c)

	err := svc.Signup(context.Background(), forms.SignUp{FirstName: "Ada", Email: ada.Email, Password: "password1", PasswordConfirm: "password1"})
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"lastName"}, verr.FieldNames())
	assert.Empty(t, c.Calls())

	require.NoError(t, svc.Signup(context.Background(), forms.SignUp{
		FirstName: "Ada", LastName: "Lovelace", Email: ada.Email, Password: "password1", PasswordConfirm: "password1",
	}))
	assert.Equal(t, ada, st.State().Auth.User)
	assert.True(t, st.State().Auth.IsAuthenticated)
}

func TestAuth_Logout(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc, st, _ := newAuth(&fakeClient{})
		st.Dispatch(store.UserAuthenticated{User: ada})

		require.NoError(t, svc.Logout(context.Background()))

		s := st.State().Auth
		assert.True(t, s.User.IsEmpty())
		assert.False(t, s.IsAuthenticated)
		assert.False(t, s.IsLoading)
	})

	t.Run("failure keeps the session and is silent", func(t *testing.T) {
		svc, st, n := newAuth(&fakeClient{logOut: func() error { return errors.New("down") }})
		st.Dispatch(store.UserAuthenticated{User: ada})

		require.Error(t, svc.Logout(context.Background()))

		s := st.State().Auth
		assert.Equal(t, ada, s.User)
		assert.True(t, s.IsAuthenticated)
		assert.False(t, s.IsLoading)
		assert.Empty(t, n.All())
	})
}

func TestAuth_UpdateProfile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc, st, n := newAuth(&fakeClient{})
		st.Dispatch(store.UserAuthenticated{User: ada})

		f := forms.ProfileOf(ada)
		f.LastName = "King"
		require.NoError(t, svc.UpdateProfile(context.Background(), f))

		assert.Equal(t, "King", st.State().Auth.User.LastName)
		assert.False(t, st.State().Auth.IsUpdatingUser)
		assert.Equal(t, []raised{{models.SeveritySuccess, "User details updated"}}, n.All())
	})

	t.Run("failure leaves the user", func(t *testing.T) {
		c := &fakeClient{updateUser: func(models.User) (models.User, error) {
			return models.User{}, &api.APIError{StatusCode: 400, Message: "Email already in use"}
		}}
		svc, st, n := newAuth(c)
		st.Dispatch(store.UserAuthenticated{User: ada})

		f := forms.ProfileOf(ada)
		f.Email = "grace@example.com"
		require.Error(t, svc.UpdateProfile(context.Background(), f))

		assert.Equal(t, ada, st.State().Auth.User)
		assert.Equal(t, []raised{{models.SeverityError, "Email already in use"}}, n.All())
	})

	t.Run("invalid", func(t *testing.T) {
		c := &fakeClient{}
		svc, _, n := newAuth(c)

		err := svc.UpdateProfile(context.Background(), forms.Profile{FirstName: "Ada", LastName: "L", Email: "nope"})

		var verr *forms.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, c.Calls())
		assert.Empty(t, n.All())
	})
}

func TestAuth_UpdatePassword(t *testing.T) {
	c := &fakeClient{updatePassword: func(api.PasswordChange) (models.User, error) {
		return models.User{FirstName: "Someone", LastName: "Else", Email: "x@example.com"}, nil
	}}
	svc, st, n := newAuth(c)
	st.Dispatch(store.UserAuthenticated{User: ada})

	require.NoError(t, svc.UpdatePassword(context.Background(), forms.PasswordChange{
		CurrentPassword: "password1", NewPassword: "password2", NewPasswordConfirm: "password2",
	}))

	assert.Equal(t, ada, st.State().Auth.User)
	assert.False(t, st.State().Auth.IsUpdatingPassword)
	assert.Equal(t, []raised{{models.SeveritySuccess, "Password updated"}}, n.All())

	err := svc.UpdatePassword(context.Background(), forms.PasswordChange{CurrentPassword: "password1", NewPassword: "password2", NewPasswordConfirm: "password3"})
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"UpdatePassword"}, c.Calls())
}
