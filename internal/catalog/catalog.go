// Package catalog holds the in-memory view of products and internal assets.
// State is loaded from the gateway and refreshed after every completed sale
// so displayed stock reflects server-side truth. The catalog is shared by
// all request handlers and is safe for concurrent reads.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/repository"
)

// Catalog caches products and assets loaded from the gateway.
type Catalog struct {
	products repository.ProductRepository
	assets   repository.AssetRepository

	mu           sync.RWMutex
	productCache []entity.Product
	assetCache   []entity.InternalAsset
}

// New creates a catalog over the given repositories. Call Refresh to load
// the initial state.
func New(products repository.ProductRepository, assets repository.AssetRepository) *Catalog {
	return &Catalog{products: products, assets: assets}
}

// Refresh reloads products and assets from the gateway and swaps the cache.
// On error the previous cache is kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	products, err := c.products.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	assets, err := c.assets.ListAssets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}

	c.mu.Lock()
	c.productCache = products
	c.assetCache = assets
	c.mu.Unlock()

	slog.Info("Catalog refreshed", "products", len(products), "assets", len(assets))
	return nil
}

// Products returns a copy of the cached products.
func (c *Catalog) Products() []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.Product, len(c.productCache))
	copy(out, c.productCache)
	return out
}

// Assets returns a copy of the cached assets.
func (c *Catalog) Assets() []entity.InternalAsset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.InternalAsset, len(c.assetCache))
	copy(out, c.assetCache)
	return out
}

// Product looks up a cached product by ID.
func (c *Catalog) Product(id string) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.productCache {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// Asset looks up a cached asset by ID.
func (c *Catalog) Asset(id string) (entity.InternalAsset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, a := range c.assetCache {
		if a.ID == id {
			return a, true
		}
	}
	return entity.InternalAsset{}, false
}

// RegisterClick bumps the product's engagement counter, locally and at the
// gateway. The counter is independent of the order workflow; a gateway
// failure is reported but leaves the local count applied.
func (c *Catalog) RegisterClick(ctx context.Context, productID string) error {
	c.mu.Lock()
	for i := range c.productCache {
		if c.productCache[i].ID == productID {
			c.productCache[i].Clicks++
			break
		}
	}
	c.mu.Unlock()

	if err := c.products.IncrementClick(ctx, productID); err != nil {
		return fmt.Errorf("failed to increment click for product %s: %w", productID, err)
	}
	return nil
}
