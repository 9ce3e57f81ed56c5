package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := New[string, string]()
	c.Set("u-1", "Alice Adviser", 0)

	v, ok := c.Get("u-1")
	require.True(t, ok)
	require.Equal(t, "Alice Adviser", v)

	_, ok = c.Get("u-2")
	require.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[string, int]()

	base := time.Now()
	now = func() time.Time { return base }
	defer func() { now = time.Now }()

	c.Set("k", 1, time.Minute)
	_, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 1, c.Len())

	now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok = c.Get("k")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestTTLCache_DeleteAndClear(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())
}
