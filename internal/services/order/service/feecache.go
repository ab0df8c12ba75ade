package service

import (
	"context"
	"sync"

	"github.com/wharfside/marketplace/internal/services/order/domain"
	"github.com/wharfside/marketplace/internal/services/order/storage"
)

// feeTierCache is a read-through cache over the fee tier table. Tiers change
// rarely; settlement reads them on every completion. Writes invalidate.
type feeTierCache struct {
	store storage.Store

	mu     sync.Mutex
	tiers  []domain.FeeTier
	loaded bool
}

func newFeeTierCache(store storage.Store) *feeTierCache {
	return &feeTierCache{store: store}
}

func (c *feeTierCache) Get(ctx context.Context) ([]domain.FeeTier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.tiers, nil
	}
	records, err := c.store.ListFeeTiers(ctx)
	if err != nil {
		return nil, err
	}
	tiers := make([]domain.FeeTier, 0, len(records))
	for _, record := range records {
		tiers = append(tiers, domain.FeeTier{
			ID:       record.ID,
			MinPrice: record.MinPrice,
			MaxPrice: record.MaxPrice,
			RateBP:   record.RateBP,
		})
	}
	c.tiers = tiers
	c.loaded = true
	return c.tiers, nil
}

func (c *feeTierCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tiers = nil
	c.loaded = false
}
