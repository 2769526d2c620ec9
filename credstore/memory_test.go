package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facegate/facegate"
)

func seedInput(id, username string) facegate.CreateIdentityInput {
	return facegate.CreateIdentityInput{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		FaceVector:   []float32{0.1, 0.2, 0.3, 0.4},
	}
}

func TestMemoryCreateAndFind(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, seedInput("u1", "alice"))
	require.NoError(t, err)
	require.Equal(t, "u1", created.ID)
	require.False(t, created.CreatedAt.IsZero())

	byName, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)

	byID, err := store.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestMemoryFindMissing(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, facegate.ErrIdentityNotFound)

	_, err = store.FindByID(ctx, "u404")
	assert.ErrorIs(t, err, facegate.ErrIdentityNotFound)
}

func TestMemoryCreateDuplicateUsername(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.Create(ctx, seedInput("u1", "alice"))
	require.NoError(t, err)

	_, err = store.Create(ctx, seedInput("u2", "alice"))
	assert.ErrorIs(t, err, facegate.ErrDuplicateUsername)
}

func TestMemoryUpdateFaceVector(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.Create(ctx, seedInput("u1", "alice"))
	require.NoError(t, err)

	updated, err := store.UpdateFaceVector(ctx, "u1", []float32{0.9, 0.8, 0.7, 0.6})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9, 0.8, 0.7, 0.6}, updated.FaceVector)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	_, err = store.UpdateFaceVector(ctx, "u404", []float32{0.1})
	assert.ErrorIs(t, err, facegate.ErrIdentityNotFound)
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.Create(ctx, seedInput("u1", "alice"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "u1"))

	_, err = store.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, facegate.ErrIdentityNotFound)

	// Username is free for re-registration after delete.
	_, err = store.Create(ctx, seedInput("u2", "alice"))
	require.NoError(t, err)

	// Deleting an absent record is not an error.
	require.NoError(t, store.Delete(ctx, "u404"))
}

func TestMemoryReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, seedInput("u1", "alice"))
	require.NoError(t, err)

	created.FaceVector[0] = 99
	created.Username = "mallory"

	fresh, err := store.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), fresh.FaceVector[0])
	assert.Equal(t, "alice", fresh.Username)
}
