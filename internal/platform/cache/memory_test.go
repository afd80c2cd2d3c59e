package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newMemory(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "page:home", []byte("<html>"), time.Minute))
	got, err := c.Get(ctx, "page:home")
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(got))

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "page:home")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryNoTTLNeverExpires(t *testing.T) {
	now := time.Now()
	c := newMemory(func() time.Time { return now })
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	now = now.Add(24 * time.Hour)
	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestMemoryDeletePrefix(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	for _, k := range []string{"page:home:", "page:home:saas", "page:pricing:", "wizard:1"} {
		require.NoError(t, c.Set(ctx, k, []byte("x"), time.Hour))
	}
	require.NoError(t, c.DeletePrefix(ctx, "page:"))

	_, err := c.Get(ctx, "page:home:saas")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, "wizard:1")
	assert.NoError(t, err)
}

func TestMemoryReturnsCopies(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'z'
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryCapSweepsExpiredThenEvictsSoonest(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newMemory(func() time.Time { return now })
	c.maxEntries = 3
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))
	now = now.Add(2 * time.Minute)

	require.NoError(t, c.Set(ctx, "d", []byte("4"), 2*time.Hour))
	assert.Len(t, c.items, 3)
	assert.NotContains(t, c.items, "a")

	require.NoError(t, c.Set(ctx, "e", []byte("5"), 2*time.Hour))
	assert.Len(t, c.items, 3)
	assert.NotContains(t, c.items, "b")
	_, err := c.Get(ctx, "c")
	assert.NoError(t, err)

	// overwriting an existing key never evicts
	require.NoError(t, c.Set(ctx, "e", []byte("6"), time.Hour))
	assert.Len(t, c.items, 3)

	for i := range 500 {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("page:/?junk=%d|", i), []byte("x"), time.Hour))
	}
	assert.Len(t, c.items, 3)
}
