package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
)

var _ Client = (*HTTPClient)(nil)

// DefaultTimeout bounds every request.
const DefaultTimeout = 3 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

type userEnvelope struct {
	User models.User `json:"user"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
}

// HTTPClient talks to the REST backend.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

// NewHTTPClient returns a client for baseURL (e.g.
// http://127.0.0.1:8080/api/v1). A non-positive timeout selects
// DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		log:        log.With("module", "api"),
	}, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, cr Credentials) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/login", cr, &out)
	return out.User, err
}

func (c *HTTPClient) SignUp(ctx context.Context, r Registration) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/signup", r, &out)
	return out.User, err
}

func (c *HTTPClient) LogOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *HTTPClient) LoadUser(ctx context.Context) (models.User, error) {
	var out dataEnvelope[models.User]
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &out)
	return out.Data, err
}

func (c *HTTPClient) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPatch, "/users/update", u, &out)
	return out.User, err
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, p PasswordChange) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPatch, "/users/updatePassword", p, &out)
	return out.User, err
}

func (c *HTTPClient) LoadDeposits(ctx context.Context) ([]models.Deposit, error) {
	var out dataEnvelope[[]models.Deposit]
	if err := c.do(ctx, http.MethodGet, "/deposits", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []models.Deposit{}
	}
	return out.Data, nil
}

func (c *HTTPClient) CreateDeposit(ctx context.Context, in models.DepositInput) (models.Deposit, error) {
	var out dataEnvelope[models.Deposit]
	err := c.do(ctx, http.MethodPost, "/deposits", in, &out)
	return out.Data, err
}

func (c *HTTPClient) UpdateDeposit(ctx context.Context, d models.Deposit) (models.Deposit, error) {
	var out dataEnvelope[models.Deposit]
	err := c.do(ctx, http.MethodPatch, "/deposits/"+strconv.FormatInt(d.ID, 10), d, &out)
	return out.Data, err
}

func (c *HTTPClient) DeleteDeposit(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/deposits/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) ExportDeposits(ctx context.Context) (models.ExportLink, error) {
	var out dataEnvelope[models.ExportLink]
	err := c.do(ctx, http.MethodPost, "/deposits/export", nil, &out)
	return out.Data, err
}

// do sends body as JSON and decodes a 2xx response into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
