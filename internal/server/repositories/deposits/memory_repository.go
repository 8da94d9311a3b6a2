package deposits

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
)

// MemoryRepository keeps deposits in process memory. Returned records are
// copies.
type MemoryRepository struct {
	mu       sync.RWMutex
	deposits map[int64]models.Deposit
	nextID   int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{deposits: make(map[int64]models.Deposit)}
}

func (r *MemoryRepository) Create(_ context.Context, d *models.Deposit) (*models.Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	c := *d
	c.ID = r.nextID
	c.CreatedAt = now
	c.UpdatedAt = now
	r.deposits[c.ID] = c

	*d = c
	return &c, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]*models.Deposit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Deposit, 0)
	for _, d := range r.deposits {
		if d.UserID == userID {
			c := d
			result = append(result, &c)
		}
	}
	// ids grow with creation time
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, userID, id int64) (*models.Deposit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.deposits[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) Update(_ context.Context, d *models.Deposit) (*models.Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.deposits[d.ID]
	if !ok || cur.UserID != d.UserID {
		return nil, common.ErrorNotFound
	}

	c := *d
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.deposits[c.ID] = c
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deposits[id]
	if !ok || d.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.deposits, id)
	return nil
}
