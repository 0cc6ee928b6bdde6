package orders

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "u-1", []models.Order{{ID: "A1"}}))
	got, ok, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A1", got[0].ID)

	require.NoError(t, c.Delete(ctx, "u-1"))
	_, ok, _ = c.Get(ctx, "u-1")
	require.False(t, ok)
}

func TestMemoryCache_Expires(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u-1", []models.Order{{ID: "A1"}}))

	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "u-1")
	require.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "u-1")
	require.False(t, ok)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()
	in := []models.Order{{ID: "A1", Items: []models.OrderItem{{Name: "Mug"}}}}
	require.NoError(t, c.Set(ctx, "k", in))

	in[0].Items[0].Name = "changed"
	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "Mug", got[0].Items[0].Name)

	got[0].ID = "mutated"
	again, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "A1", again[0].ID)
}
