package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_SetGet(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	_, err := c.Get(ctx, "digest")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "digest", []byte("2026-08-27T00:00:00Z"), 0))

	val, err := c.Get(ctx, "digest")
	require.NoError(t, err)
	assert.Equal(t, []byte("2026-08-27T00:00:00Z"), val)
}

func TestMemoryClient_Delete(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "digest", []byte("x"), 0))
	require.NoError(t, c.Delete(ctx, "digest"))

	_, err := c.Get(ctx, "digest")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Deleting an absent key is not an error.
	assert.NoError(t, c.Delete(ctx, "never-set"))
}

func TestMemoryClient_TTLExpiry(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_ZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "forever", []byte("x"), 0))
	time.Sleep(2 * time.Millisecond)

	_, err := c.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryClient_Close(t *testing.T) {
	c := NewMemoryClient()
	assert.NoError(t, c.Close())
}
