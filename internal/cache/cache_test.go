package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_SetGet(t *testing.T) {
	c := NewMemoryClient(10)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "answer:q1", []byte(`{"text":"420 seats"}`), time.Minute))

	val, err := c.Get(ctx, "answer:q1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"text":"420 seats"}`), val)
}

func TestMemoryClient_Miss(t *testing.T) {
	c := NewMemoryClient(10)
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_Expiry(t *testing.T) {
	c := NewMemoryClient(10)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), -time.Second))

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_Delete(t *testing.T) {
	c := NewMemoryClient(10)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_EvictsAtCapacity(t *testing.T) {
	c := NewMemoryClient(3)
	defer c.Close()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("k%d", i)
		require.NoError(t, c.Set(ctx, key, []byte("v"), time.Duration(i+1)*time.Minute))
	}

	// k0 had the earliest expiry and is evicted to make room for k3.
	_, err := c.Get(ctx, "k0")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = c.Get(ctx, "k3")
	assert.NoError(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "answer:seats in btech cse", Key("answer", "seats in btech cse"))
	assert.Equal(t, "a:b:c", Key("a", "b", "c"))
}
