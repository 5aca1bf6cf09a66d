package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront-service/internal/cache"
	"storefront-service/internal/domain"

	"go.uber.org/zap"
)

// viewStamp identifies the invalidation state a cart listing was read under
type viewStamp struct {
	generation uint64
	epoch      uint64
}

// CartViews caches the per-customer cart listing.
//
// Every invalidation bumps a per-customer generation (or the global epoch)
// before deleting the cached entry. A fill records the stamp before reading
// the database and checks it again after writing; if an invalidation slipped
// in between, the fill deletes its own entry. Either the fill observes the
// bump or the invalidation's delete lands after the fill's write.
type CartViews struct {
	cache  cache.Cache
	logger *zap.Logger
	ttl    time.Duration

	mu          sync.Mutex
	generations map[int64]uint64
	epoch       uint64
}

func NewCartViews(c cache.Cache, logger *zap.Logger, ttl time.Duration) *CartViews {
	return &CartViews{
		cache:       c,
		logger:      logger,
		ttl:         ttl,
		generations: make(map[int64]uint64),
	}
}

// Get returns the cached listing. Cache errors other than a miss are logged
// and reported as a miss.
func (v *CartViews) Get(ctx context.Context, customerID int64) ([]domain.ShoppingCart, bool) {
	key := cache.CustomerCartsKey(customerID)

	var carts []domain.ShoppingCart
	err := cache.GetJSON(ctx, v.cache, key, &carts)
	if err == nil {
		v.logger.Debug("Cache hit", zap.String("key", key))
		return carts, true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		v.logger.Warn("Cache read failed, falling back to database", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

func (v *CartViews) stamp(customerID int64) viewStamp {
	v.mu.Lock()
	defer v.mu.Unlock()
	return viewStamp{generation: v.generations[customerID], epoch: v.epoch}
}

// fillKey names one fill for singleflight; reads started after an
// invalidation never join a fill started before it
func (v *CartViews) fillKey(customerID int64, stamp viewStamp) string {
	return fmt.Sprintf("%s@%d.%d", cache.CustomerCartsKey(customerID), stamp.generation, stamp.epoch)
}

// Put caches carts read from the database after stamp was taken
func (v *CartViews) Put(ctx context.Context, customerID int64, stamp viewStamp, carts []domain.ShoppingCart) {
	key := cache.CustomerCartsKey(customerID)
	if v.stamp(customerID) != stamp {
		v.logger.Debug("Skipping stale cart view", zap.String("key", key))
		return
	}

	if err := cache.SetJSON(ctx, v.cache, key, carts, v.ttl); err != nil {
		v.logger.Warn("Failed to cache customer carts", zap.String("key", key), zap.Error(err))
		return
	}

	if v.stamp(customerID) != stamp {
		v.logger.Debug("Cart view invalidated during fill", zap.String("key", key))
		v.delete(ctx, key)
	}
}

// Invalidate drops the listing of one customer
func (v *CartViews) Invalidate(ctx context.Context, customerID int64) {
	v.mu.Lock()
	v.generations[customerID]++
	v.mu.Unlock()

	// the mutation has committed, so the delete must not depend on the caller
	v.delete(context.WithoutCancel(ctx), cache.CustomerCartsKey(customerID))
}

// InvalidateAll drops every cached listing
func (v *CartViews) InvalidateAll(ctx context.Context) {
	v.mu.Lock()
	v.epoch++
	v.mu.Unlock()

	if err := v.cache.DeleteByPattern(context.WithoutCancel(ctx), cache.AllCustomerCartsPattern); err != nil {
		v.logger.Warn("Failed to invalidate cart views", zap.Error(err))
	}
}

func (v *CartViews) delete(ctx context.Context, key string) {
	if err := v.cache.Delete(ctx, key); err != nil {
		v.logger.Warn("Failed to invalidate customer carts", zap.String("key", key), zap.Error(err))
	}
}
