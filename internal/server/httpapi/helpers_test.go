package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/config"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeStore is an in-memory ObjectStore.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    bool
}

func newFakeStore() *fakeStore { return &fakeStore{objects: map[string][]byte{}} }

func (s *fakeStore) Put(_ context.Context, key string, body []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("bucket unavailable")
	}
	s.objects[key] = body
	return nil
}

func (s *fakeStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://files.example/%s?ttl=%d", key, int(ttl.Seconds())), nil
}

// recorder counts metric calls.
type recorder struct {
	mu       sync.Mutex
	requests map[string]int
	limited  int
	exports  map[bool]int
}

func newRecorder() *recorder {
	return &recorder{requests: map[string]int{}, exports: map[bool]int{}}
}

func (r *recorder) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[fmt.Sprintf("%s %s %d", method, route, status)]++
}

func (r *recorder) RecordRateLimited() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limited++
}

func (r *recorder) RecordExport(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports[ok]++
}

type testEnv struct {
	router  *gin.Engine
	store   *fakeStore
	metrics *recorder
}

func newEnv(t *testing.T, opts ...func(*Options)) *testEnv {
	t.Helper()

	repos := repomanager.NewInMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour, ExportURLValidity: 15 * time.Minute}
	store := newFakeStore()
	rec := newRecorder()

	o := Options{
		Users:    services.NewUserService(repos, cfg, logging.Nop()),
		Deposits: services.NewDepositService(repos, services.NewExporter(store, cfg.ExportURLValidity), logging.Nop()),
		Log:      logging.Nop(),
		Metrics:  rec,
	}
	for _, fn := range opts {
		fn(&o)
	}

	return &testEnv{router: NewRouter(o), store: store, metrics: rec}
}

// do performs a request, authenticating with token when it is non-empty.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Message
}

func signupBody(email string) map[string]string {
	return map[string]string{
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"email":           email,
		"password":        "password1",
		"passwordConfirm": "password1",
	}
}

// signup registers email and returns its session token.
func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/signup", signupBody(email), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := sessionCookie(w)
	require.NotNil(t, c)
	return c.Value
}
