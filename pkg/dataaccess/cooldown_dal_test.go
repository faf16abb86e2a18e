package dataaccess

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCooldowns(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newMemoryCooldowns(func() time.Time { return now })

	remaining, err := c.Remaining(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, remaining)

	require.NoError(t, c.Start(ctx, "u1", time.Minute))

	now = now.Add(20 * time.Second)
	remaining, err = c.Remaining(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 40*time.Second, remaining)

	// Cooldowns are per user.
	remaining, err = c.Remaining(ctx, "u2")
	require.NoError(t, err)
	require.Zero(t, remaining)

	now = now.Add(time.Minute)
	remaining, err = c.Remaining(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, remaining)
	require.Empty(t, c.expires)
}

func TestMemoryCooldownsZeroDuration(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCooldowns(time.Now)

	require.NoError(t, c.Start(ctx, "u1", 0))
	remaining, err := c.Remaining(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, remaining)
}

func TestMemoryCooldownsPrunesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newMemoryCooldowns(func() time.Time { return now })

	require.NoError(t, c.Start(ctx, "u1", time.Second))
	now = now.Add(time.Hour)
	require.NoError(t, c.Start(ctx, "u2", time.Second))

	require.Len(t, c.expires, 1)
	require.Contains(t, c.expires, "u2")
}
