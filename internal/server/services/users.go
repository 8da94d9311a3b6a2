package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/auth"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/config"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/deposits"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/users"
)

// now is a seam for tests.
var now = time.Now

// Signup is a validated registration request.
type Signup struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Profile holds the editable user fields.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
}

// PasswordChange is a validated update-password request.
type PasswordChange struct {
	CurrentPassword    string
	NewPassword        string
	NewPasswordConfirm string
}

// Session is a signed-in user plus the token identifying the session.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// UserService handles registration, login and the session token lifecycle.
// A password change revokes every token issued before it.
type UserService struct {
	repos            repomanager.RepositoryManager
	jwtSecret        []byte
	validityDuration time.Duration
	log              logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		repos:            m,
		jwtSecret:        []byte(cfg.SecretKey),
		validityDuration: cfg.TokenValidityDuration,
		log:              log.With("module", "users"),
	}
}

// Signup creates an account and opens a session for it.
func (s *UserService) Signup(ctx context.Context, in Signup) (*Session, error) {
	if len(in.Password) < auth.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repos.Users().Create(ctx, &models.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.newSession(user)
}

// Login verifies credentials and opens a session.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repos.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

// Authenticate resolves a session token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrNotLoggedIn
	}

	user, err := s.repos.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if claims.StaleFor(user.PasswordChangedAt) {
		return nil, ErrSessionRevoked
	}

	return user, nil
}

// Me returns the user by id.
func (s *UserService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repos.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// UpdateProfile replaces the user's names and email.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, p Profile) (*models.User, error) {
	user, err := s.repos.Users().UpdateProfile(ctx, &models.User{
		ID:        userID,
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     normalizeEmail(p.Email),
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, ErrEmailTaken
		case errors.Is(err, common.ErrorNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// UpdatePassword checks the current password, stores the new one and opens
// a fresh session. Sessions opened earlier stop working.
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, p PasswordChange) (*Session, error) {
	if p.NewPassword != p.NewPasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if len(p.NewPassword) < auth.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var updated *models.User
	err := s.repos.WithTx(ctx, func(ctx context.Context, ur users.Repository, _ deposits.Repository) error {
		user, err := ur.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !auth.CheckPassword(user.PasswordHash, p.CurrentPassword) {
			return ErrWrongPassword
		}

		hash, err := auth.HashPassword(p.NewPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		// postgres keeps microseconds
		changedAt := now().UTC().Truncate(time.Microsecond)
		if err := ur.UpdatePassword(ctx, userID, hash, changedAt); err != nil {
			return err
		}

		user.PasswordHash = hash
		user.PasswordChangedAt = changedAt
		updated = user
		return nil
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("error updating password: %w", err)
	}

	s.log.Info(ctx, "password changed", "user_id", userID)
	return s.newSession(updated)
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, user.PasswordChangedAt, s.jwtSecret, s.validityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: user, Token: token, ExpiresAt: now().Add(s.validityDuration)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
