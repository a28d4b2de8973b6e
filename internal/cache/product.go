package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/producthub/producthub/internal/model"
)

// Cache key prefix and TTL for per-owner product lists.
const (
	productListKeyPrefix = "products:owner:"

	// ProductListTTL bounds staleness if an invalidation is ever missed.
	ProductListTTL = 5 * time.Minute
)

// ErrCacheMiss is returned when a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// productListKey builds the cache key for an owner's product list.
func productListKey(ownerID int64) string {
	return productListKeyPrefix + strconv.FormatInt(ownerID, 10)
}

// GetProductList retrieves a cached product list for the owner.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetProductList(ctx context.Context, ownerID int64) ([]*model.Product, error) {
	data, err := c.client.Get(ctx, productListKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []*model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		// Treat undecodable entries as a miss; the caller refreshes them.
		return nil, ErrCacheMiss
	}

	return products, nil
}

// SetProductList stores the owner's product list in the cache.
func (c *Cache) SetProductList(ctx context.Context, ownerID int64, products []*model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal product list: %w", err)
	}

	if err := c.client.Set(ctx, productListKey(ownerID), data, ProductListTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache product list: %w", err)
	}

	return nil
}

// InvalidateProductList removes the owner's cached product list.
// Called after any write to the owner's products.
func (c *Cache) InvalidateProductList(ctx context.Context, ownerID int64) error {
	if err := c.client.Del(ctx, productListKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product list: %w", err)
	}
	return nil
}
