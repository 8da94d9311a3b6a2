package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/api"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
)

// fakeClient implements api.Client; nil funcs return zero values.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	signIn         func(api.Credentials) (models.User, error)
	signUp         func(api.Registration) (models.User, error)
	logOut         func() error
	loadUser       func() (models.User, error)
	updateUser     func(models.User) (models.User, error)
	updatePassword func(api.PasswordChange) (models.User, error)
	loadDeposits   func() ([]models.Deposit, error)
	createDeposit  func(models.DepositInput) (models.Deposit, error)
	updateDeposit  func(models.Deposit) (models.Deposit, error)
	deleteDeposit  func(int64) error
	exportDeposits func() (models.ExportLink, error)
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) SignIn(_ context.Context, c api.Credentials) (models.User, error) {
	f.record("SignIn")
	if f.signIn == nil {
		return models.User{}, nil
	}
	return f.signIn(c)
}

func (f *fakeClient) SignUp(_ context.Context, r api.Registration) (models.User, error) {
	f.record("SignUp")
	if f.signUp == nil {
		return models.User{}, nil
	}
	return f.signUp(r)
}

func (f *fakeClient) LogOut(context.Context) error {
	f.record("LogOut")
	if f.logOut == nil {
		return nil
	}
	return f.logOut()
}

func (f *fakeClient) LoadUser(context.Context) (models.User, error) {
	f.record("LoadUser")
	if f.loadUser == nil {
		return models.User{}, nil
	}
	return f.loadUser()
}

func (f *fakeClient) UpdateUser(_ context.Context, u models.User) (models.User, error) {
	f.record("UpdateUser")
	if f.updateUser == nil {
		return u, nil
	}
	return f.updateUser(u)
}

func (f *fakeClient) UpdatePassword(_ context.Context, p api.PasswordChange) (models.User, error) {
	f.record("UpdatePassword")
	if f.updatePassword == nil {
		return models.User{}, nil
	}
	return f.updatePassword(p)
}

func (f *fakeClient) LoadDeposits(context.Context) ([]models.Deposit, error) {
	f.record("LoadDeposits")
	if f.loadDeposits == nil {
		return []models.Deposit{}, nil
	}
	return f.loadDeposits()
}

func (f *fakeClient) CreateDeposit(_ context.Context, in models.DepositInput) (models.Deposit, error) {
	f.record("CreateDeposit")
	if f.createDeposit == nil {
		return in.WithID(1), nil
	}
	return f.createDeposit(in)
}

func (f *fakeClient) UpdateDeposit(_ context.Context, d models.Deposit) (models.Deposit, error) {
	f.record("UpdateDeposit")
	if f.updateDeposit == nil {
		return d, nil
	}
	return f.updateDeposit(d)
}

func (f *fakeClient) DeleteDeposit(_ context.Context, id int64) error {
	f.record("DeleteDeposit")
	if f.deleteDeposit == nil {
		return nil
	}
	return f.deleteDeposit(id)
}

func (f *fakeClient) ExportDeposits(context.Context) (models.ExportLink, error) {
	f.record("ExportDeposits")
	if f.exportDeposits == nil {
		return models.ExportLink{}, nil
	}
	return f.exportDeposits()
}

type raised struct {
	severity models.Severity
	message  string
}

// fakeNotifier records alerts instead of putting them in the store.
type fakeNotifier struct {
	mu     sync.Mutex
	alerts []raised
}

func (n *fakeNotifier) Error(msg string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, raised{models.SeverityError, msg})
	return "e"
}

func (n *fakeNotifier) Success(msg string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, raised{models.SeveritySuccess, msg})
	return "s"
}

func (n *fakeNotifier) All() []raised {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]raised(nil), n.alerts...)
}
