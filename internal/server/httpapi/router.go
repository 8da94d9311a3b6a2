// Package httpapi exposes the deposits backend as a JSON REST API under
// /api/v1 using gin.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

// UserService is the account side of the API.
type UserService interface {
	Authenticator
	Signup(ctx context.Context, in services.Signup) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, p services.Profile) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, p services.PasswordChange) (*services.Session, error)
}

// DepositService is the deposits side of the API.
type DepositService interface {
	List(ctx context.Context, userID int64) ([]*models.Deposit, error)
	Create(ctx context.Context, userID int64, in services.DepositInput) (*models.Deposit, error)
	Update(ctx context.Context, userID, id int64, in services.DepositInput) (*models.Deposit, error)
	Delete(ctx context.Context, userID, id int64) error
	Export(ctx context.Context, userID int64) (*models.ExportLink, error)
}

// Options wires the router. Metrics, MetricsHandler and Limiter are optional.
// Forwarding headers are honoured only from TrustedProxies.
type Options struct {
	Users          UserService
	Deposits       DepositService
	Log            logging.Logger
	Metrics        Recorder
	MetricsHandler http.Handler
	Limiter        *RateLimiter
	CORSOrigins    []string
	CookieSecure   bool
	TrustedProxies []string
}

type handler struct {
	users        UserService
	deposits     DepositService
	log          logging.Logger
	metrics      Recorder
	cookieSecure bool
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(o Options) *gin.Engine {
	setupValidator()

	log := o.Log
	if log == nil {
		log = logging.Nop()
	}
	h := &handler{
		users:        o.Users,
		deposits:     o.Deposits,
		log:          log.With("module", "httpapi"),
		metrics:      o.Metrics,
		cookieSecure: o.CookieSecure,
	}

	r := gin.New()
	if err := r.SetTrustedProxies(o.TrustedProxies); err != nil {
		h.log.Warn(context.Background(), "ignoring trusted proxies", "error", err)
	}
	r.Use(gin.Recovery(), AccessLog(h.log))
	if o.Metrics != nil {
		r.Use(Metrics(o.Metrics))
	}
	if len(o.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		abortWithMessage(c, http.StatusNotFound, "Can't find "+c.Request.URL.Path+" on this server")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if o.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(o.MetricsHandler))
	}

	api := r.Group("/api/v1")
	if o.Limiter != nil {
		api.Use(RateLimit(o.Limiter, o.Metrics))
	}

	api.POST("/signup", h.signup)
	api.POST("/login", h.login)
	api.POST("/logout", h.logout)

	authed := api.Group("", h.requireAuth(o.Users))

	authed.GET("/users/me", h.me)
	authed.PATCH("/users/update", h.updateProfile)
	authed.PATCH("/users/updatePassword", h.updatePassword)

	authed.GET("/deposits", h.listDeposits)
	authed.POST("/deposits", h.createDeposit)
	authed.POST("/deposits/export", h.exportDeposits)
	authed.PATCH("/deposits/:id", h.updateDeposit)
	authed.DELETE("/deposits/:id", h.deleteDeposit)

	return r
}
