package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/cache"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

// ProductService serves the product catalog
type ProductService struct {
	store    repository.Store
	cache    cache.Cache
	views    *CartViews
	logger   *zap.Logger
	cacheTTL time.Duration
}

func NewProductService(store repository.Store, c cache.Cache, views *CartViews, logger *zap.Logger, cacheTTL time.Duration) *ProductService {
	return &ProductService{
		store:    store,
		cache:    c,
		views:    views,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// CreateProducts persists every product or none of them
func (s *ProductService) CreateProducts(ctx context.Context, products []*domain.Product) ([]*domain.Product, error) {
	if err := s.store.Products().CreateAll(ctx, products); err != nil {
		return nil, err
	}
	s.logger.Info("Products created", zap.Int("count", len(products)))
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	key := cache.ProductKey(id)

	var cached domain.Product
	if err := cache.GetJSON(ctx, s.cache, key, &cached); err == nil {
		return &cached, nil
	}

	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if err := cache.SetJSON(ctx, s.cache, key, product, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache product", zap.Int64("product_id", id), zap.Error(err))
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.Products().FindAll(ctx)
}

// SearchProducts fails with NotFound when nothing matches
func (s *ProductService) SearchProducts(ctx context.Context, name string) ([]domain.Product, error) {
	products, err := s.store.Products().SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.NewNoProductsMatching(name)
	}
	return products, nil
}

func (s *ProductService) SuggestedProducts(ctx context.Context, excludedIDs []int64, categories []domain.Category) ([]domain.Product, error) {
	return s.store.Products().FindSuggested(ctx, excludedIDs, categories)
}

// UpdateProduct replaces every mutable field of an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, replacement *domain.Product) (*domain.Product, error) {
	var updated *domain.Product
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		product, err := tx.Products().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NewProductNotFound(id)
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		product.Replace(replacement)
		if err := tx.Products().Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.Int64("product_id", id))
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.Products().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewProductNotFound(id)
		}
		return err
	}

	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	s.invalidate(ctx, id)
	return nil
}

// invalidate drops the product and every cached cart view, since cart views
// embed product data
func (s *ProductService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, cache.ProductKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate product", zap.Int64("product_id", id), zap.Error(err))
	}
	s.views.InvalidateAll(ctx)
}
