package pg

import (
	"context"
	"testing"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUser(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	user, err := storage.SaveUser(ctx, domain.User{Email: "test@example.com", PassHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.Id)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = storage.SaveUser(ctx, domain.User{Email: "test@example.com", PassHash: "hash"})
	assert.Equal(t, errors.KindConflict, errors.KindOf(err), "Saving user twice should conflict")

	found, err := storage.UserByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.Id, found.Id)
	assert.Equal(t, "hash", found.PassHash)

	_, err = storage.UserByEmail(ctx, "nonexistent@example.com")
	assert.True(t, errors.IsNotFound(err))
}

func TestAdminRegistry(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	user, err := storage.SaveUser(ctx, domain.User{Email: "admin@example.com", PassHash: "hash"})
	require.NoError(t, err)

	admin, err := storage.IsAdmin(ctx, user.Id)
	require.NoError(t, err)
	assert.False(t, admin, "no row means not admin")

	require.NoError(t, storage.SetAdmin(ctx, user.Id, true))
	require.NoError(t, storage.SetAdmin(ctx, user.Id, true), "granting twice is a no-op")
	admin, err = storage.IsAdmin(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, admin)

	require.NoError(t, storage.SetAdmin(ctx, user.Id, false))
	admin, err = storage.IsAdmin(ctx, user.Id)
	require.NoError(t, err)
	assert.False(t, admin)

	assert.True(t, errors.IsNotFound(storage.SetAdmin(ctx, uuid.NewString(), true)))

	admin, err = storage.IsAdmin(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, admin)
}
