package store

import (
	"context"
	"sync"
	"testing"

	"custodyserver/common"
	"custodyserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_UserLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	user := &models.User{Name: "alice", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	byName, err := s.FindUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := s.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Name)

	_, err = s.FindUserByName(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryStore_DuplicateUserName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, &models.User{Name: "alice"}))
	err := s.CreateUser(ctx, &models.User{Name: "alice"})
	assert.ErrorIs(t, err, common.ErrDuplicateName)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryStore_ConcurrentDuplicateRegistration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateUser(ctx, &models.User{Name: "alice"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, common.ErrDuplicateName)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one registration must win")

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryStore_ItemLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	item := &models.Item{Name: "widget", UserID: 7}
	require.NoError(t, s.CreateItem(ctx, item))

	err := s.CreateItem(ctx, &models.Item{Name: "widget", UserID: 8})
	assert.ErrorIs(t, err, common.ErrDuplicateName)

	owned, err := s.FindItemsByOwner(ctx, 7)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "widget", owned[0].Name)

	require.NoError(t, s.UpdateItemOwner(ctx, item.ID, 8))
	moved, err := s.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(8), moved.UserID)

	err = s.UpdateItemOwner(ctx, 999, 8)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryStore_DeleteItemScopedToOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	item := &models.Item{Name: "widget", UserID: 7}
	require.NoError(t, s.CreateItem(ctx, item))

	// Someone else's delete looks like a missing item.
	err := s.DeleteItem(ctx, item.ID, 8)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, s.DeleteItem(ctx, item.ID, 7))
	_, err = s.FindItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// The name is free again after deletion.
	require.NoError(t, s.CreateItem(ctx, &models.Item{Name: "widget", UserID: 9}))
}
