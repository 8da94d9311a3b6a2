package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

const (
	ctxUserKey   = "user"
	ctxUserIDKey = "userID"
)

// Recorder receives request metrics.
type Recorder interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	RecordRateLimited()
	RecordExport(ok bool)
}

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AccessLog logs every request with its status and duration.
func AccessLog(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		}
		if id := c.GetInt64(ctxUserIDKey); id != 0 {
			args = append(args, "user_id", id)
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(ctx, "http request", args...)
		case status >= http.StatusBadRequest:
			log.Warn(ctx, "http request", args...)
		default:
			log.Info(ctx, "http request", args...)
		}
	}
}

// Metrics reports each request to rec, labelled by route pattern.
func Metrics(rec Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// requireAuth admits requests carrying a valid session in the jwt cookie
// or an Authorization bearer header.
func (h *handler) requireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c.Request.Context(), sessionToken(c))
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxUserIDKey, user.ID)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if tok, err := c.Cookie(common.SessionCookieName); err == nil && tok != "" {
		return tok
	}
	if hdr := c.GetHeader("Authorization"); strings.HasPrefix(hdr, common.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(hdr, common.BearerPrefix))
	}
	return ""
}

func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get(ctxUserKey)
	user, _ := u.(*models.User)
	return user
}

func setSessionCookie(c *gin.Context, s *services.Session, secure bool) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, s.Token, maxAge, "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, "", -1, "/", "", secure, true)
}
