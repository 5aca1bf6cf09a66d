package repository

import (
	"context"
	"fmt"

	"storefront-service/internal/database"
	"storefront-service/internal/domain"

	"gorm.io/gorm"
)

// GormProductRepository is the relational Product Catalog Store
type GormProductRepository struct {
	db *gorm.DB
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(name)).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindSuggested(ctx context.Context, excludedIDs []int64, categories []domain.Category) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if len(categories) == 0 {
		return products, nil
	}

	query := r.db.WithContext(ctx).Where("category IN ?", categories)
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}
	if err := query.Order("rating DESC NULLS LAST").Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find suggested products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) CreateAll(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, product := range products {
			if err := tx.Create(product).Error; err != nil {
				return fmt.Errorf("failed to create product %q: %w", product.Name, err)
			}
		}
		return nil
	})
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Select("name", "price", "category", "rating", "updated_at").
		Updates(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		if database.IsForeignKeyViolation(result.Error) {
			return domain.ErrProductInUse
		}
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
