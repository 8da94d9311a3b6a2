package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/alerts"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/api"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/config"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/services"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
)

// downloadTimeout bounds saving an export file.
const downloadTimeout = time.Minute

type App struct {
	config   *config.Config
	st       *store.Store
	bus      *alerts.Bus
	auth     services.AuthService
	deposits services.DepositService
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	exportDir  string
	httpClient *http.Client

	// alerts already printed
	shown map[string]bool
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := api.NewHTTPClient(c.ServerURL, c.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	initial := store.Initial()
	if store.ValidRowsPerPage(c.RowsPerPage) {
		initial.Deposits.RowsPerPage = c.RowsPerPage
	} else {
		log.Warn(context.Background(), "ignoring rows per page setting", "rows", c.RowsPerPage)
	}
	st := store.New(initial)
	bus := alerts.NewBus(st, c.AlertTimeout, log)

	a := newApp(st, bus,
		services.NewAuthService(apiClient, st, bus, log),
		services.NewDepositService(apiClient, st, bus, log),
		bufio.NewReader(os.Stdin), os.Stdout, log)
	a.config = c
	if c.ExportDir != "" {
		a.exportDir = c.ExportDir
	}
	return a, nil
}

func newApp(st *store.Store, bus *alerts.Bus, auth services.AuthService, deposits services.DepositService, reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		st:       st,
		bus:      bus,
		auth:     auth,
		deposits: deposits,
		log:      log,
		reader:   reader,
		out:      out,
		shown:    make(map[string]bool),

		exportDir:  "exports",
		httpClient: &http.Client{Timeout: downloadTimeout},
	}
}

// Run restores the previous session, then blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.bus.Stop()

	fmt.Fprintln(a.out, "TrackMyDeposits (type 'help' for commands)")
	a.restore(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restore(ctx context.Context) {
	if err := a.auth.RestoreSession(ctx); err != nil {
		return
	}
	fmt.Fprintf(a.out, "Welcome back, %s\n", a.st.State().Auth.User.FullName())
	_ = a.deposits.Load(ctx)
	a.flushAlerts()
}

func (a *App) isLoggedIn() bool {
	return a.st.State().Auth.IsAuthenticated
}

func (a *App) getStatus() string {
	s := a.st.State()
	if !s.Auth.IsAuthenticated {
		return ""
	}
	return fmt.Sprintf("(%s)", s.Auth.User.Email)
}
