package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *CallbackStore {
	t.Helper()
	store, err := OpenCallbackStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCallbackStore_Create(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	req := &CallbackRequest{
		Name:      "  Priya Sharma  ",
		Phone:     "9876543210",
		Topic:     "btech cse fees",
		SessionID: "s-1",
	}
	require.NoError(t, store.Create(ctx, req))

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "Priya Sharma", req.Name)
	assert.False(t, req.CreatedAt.IsZero())

	got, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, req.ID, got[0].ID)
	assert.Equal(t, "9876543210", got[0].Phone)
	assert.Equal(t, "btech cse fees", got[0].Topic)
}

func TestCallbackStore_CreateValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.Create(ctx, &CallbackRequest{Phone: "9876543210"})
	assert.ErrorContains(t, err, "name")

	err = store.Create(ctx, &CallbackRequest{Name: "Priya", Phone: "   "})
	assert.ErrorContains(t, err, "phone")
}

func TestCallbackStore_RecentOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Hour
		store.now = func() time.Time { return base.Add(offset) }
		req := &CallbackRequest{Name: "Caller", Phone: "900000000" + string(rune('0'+i))}
		require.NoError(t, store.Create(ctx, req))
	}

	got, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "9000000002", got[0].Phone)
	assert.Equal(t, "9000000001", got[1].Phone)
}

func TestCallbackStore_RecentDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
