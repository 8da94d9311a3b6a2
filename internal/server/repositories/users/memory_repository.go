package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
)

// MemoryRepository keeps users in process memory. Returned users are
// copies.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(user.Email, 0) {
		return nil, common.ErrorAlreadyExists
	}

	r.nextID++
	now := time.Now().UTC()
	u := *user
	u.ID = r.nextID
	u.PasswordChangedAt = now
	u.CreatedAt = now
	r.users[u.ID] = u

	*user = u
	return &u, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if r.emailTakenLocked(user.Email, user.ID) {
		return nil, common.ErrorAlreadyExists
	}

	u.FirstName = user.FirstName
	u.LastName = user.LastName
	u.Email = user.Email
	r.users[u.ID] = u

	return &u, nil
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, id int64, hash []byte, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	u.PasswordChangedAt = changedAt
	r.users[id] = u
	return nil
}

func (r *MemoryRepository) emailTakenLocked(email string, except int64) bool {
	for id, u := range r.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
