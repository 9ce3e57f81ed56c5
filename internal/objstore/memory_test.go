package objstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_UploadAndRemove(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "u-1/t-1/v1/a.txt", strings.NewReader("hello")))
	require.NoError(t, s.Upload(ctx, "u-1/t-1/v1/b.txt", strings.NewReader("world")))
	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("u-1/t-1/v1/a.txt"))

	require.NoError(t, s.Remove(ctx, []string{"u-1/t-1/v1/a.txt", "u-1/t-1/v1/b.txt"}))
	require.Equal(t, 0, s.Len())
}

func TestMemoryStore_FailPattern(t *testing.T) {
	s := NewMemoryStore()
	s.FailPattern = "broken"

	err := s.Upload(context.Background(), "u-1/t-1/v1/broken.pdf", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrUploadRejected)
	require.Equal(t, 0, s.Len())

	require.NoError(t, s.Upload(context.Background(), "u-1/t-1/v1/fine.pdf", strings.NewReader("x")))
	require.Equal(t, 1, s.Len())
}
