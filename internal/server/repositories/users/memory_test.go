package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	ada, err := r.Create(ctx, &models.User{FirstName: "Ada", Email: "ada@example.com", PasswordHash: []byte("h")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ada.ID)
	assert.False(t, ada.PasswordChangedAt.IsZero())

	_, err = r.Create(ctx, &models.User{Email: "ADA@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	grace, err := r.Create(ctx, &models.User{FirstName: "Grace", Email: "grace@example.com"})
	require.NoError(t, err)

	got, err := r.GetByEmail(ctx, "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, got.ID)

	got.FirstName = "mutated"
	again, err := r.GetByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.FirstName)

	_, err = r.UpdateProfile(ctx, &models.User{ID: grace.ID, Email: "ada@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	upd, err := r.UpdateProfile(ctx, &models.User{ID: ada.ID, FirstName: "Augusta", LastName: "King", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", upd.FirstName)
	assert.Equal(t, []byte("h"), upd.PasswordHash)

	changed := time.Now().Add(time.Minute)
	require.NoError(t, r.UpdatePassword(ctx, ada.ID, []byte("h2"), changed))
	again, err = r.GetByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("h2"), again.PasswordHash)
	assert.Equal(t, changed, again.PasswordChangedAt)

	assert.ErrorIs(t, r.UpdatePassword(ctx, 99, nil, changed), common.ErrorNotFound)
	_, err = r.GetByID(ctx, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.UpdateProfile(ctx, &models.User{ID: 99})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
