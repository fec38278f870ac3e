package cache

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/config"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := t.Context()
	cfg := &config.CacheConfig{DefaultTTL: time.Minute}
	key := Key(ProductPageKeyPrefix, "gender=Women")
	page := models.ProductPage{
		Products:   []models.Product{{ID: "p1", Name: "Pegasus", Type: "Women's Shoes", Price: 130, Colors: 2}},
		Pagination: models.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
	}

	t.Run("Success - Round Trip", func(t *testing.T) {
		// Arrange
		c := NewMemoryCache(cfg)

		// Act
		require.NoError(t, c.Set(ctx, key, page, 0))

		var got models.ProductPage
		found, err := c.Get(ctx, key, &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, page, got)
	})

	t.Run("Success - Miss", func(t *testing.T) {
		c := NewMemoryCache(cfg)

		var got models.ProductPage
		found, err := c.Get(ctx, key, &got)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success - Stored Copy Is Isolated", func(t *testing.T) {
		// Arrange
		c := NewMemoryCache(cfg)
		local := page
		local.Products = append([]models.Product(nil), page.Products...)
		require.NoError(t, c.Set(ctx, key, local, 0))

		// Act
		local.Products[0].Name = "mutated"

		var got models.ProductPage
		_, err := c.Get(ctx, key, &got)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Pegasus", got.Products[0].Name)
	})

	t.Run("Success - Entry Expires", func(t *testing.T) {
		// Arrange
		c := newMemoryCache(cfg)
		require.NoError(t, c.Set(ctx, key, page, 50*time.Millisecond))

		// Act
		var got models.ProductPage
		fresh, err := c.Get(ctx, key, &got)
		require.NoError(t, err)

		// Assert
		assert.True(t, fresh)
		assert.Eventually(t, func() bool {
			found, err := c.Get(ctx, key, &got)
			return err == nil && !found
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Success - Reads Do Not Extend Expiry", func(t *testing.T) {
		// Arrange
		c := newMemoryCache(cfg)
		require.NoError(t, c.Set(ctx, key, page, time.Hour))
		before := c.items.Get(key).ExpiresAt()

		// Act
		var got models.ProductPage
		_, err := c.Get(ctx, key, &got)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, before, c.items.Get(key).ExpiresAt())
	})

	t.Run("Success - Default TTL Applied", func(t *testing.T) {
		c := newMemoryCache(cfg)
		start := time.Now()

		require.NoError(t, c.Set(ctx, key, page, -time.Second))

		expiresAt := c.items.Get(key).ExpiresAt()
		assert.WithinDuration(t, start.Add(time.Minute), expiresAt, time.Second)
	})

	t.Run("Success - Delete And Close", func(t *testing.T) {
		c := newMemoryCache(cfg)
		require.NoError(t, c.Set(ctx, key, page, 0))
		require.NoError(t, c.Set(ctx, Key(ProductKeyPrefix, "p1"), page.Products[0], 0))

		require.NoError(t, c.Delete(ctx, key))
		assert.Equal(t, 1, c.items.Len())

		require.NoError(t, c.Close())
		assert.Zero(t, c.items.Len())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		c := NewMemoryCache(cfg)

		err := c.Set(ctx, key, make(chan int), 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key "+key)
	})
}
