package repository

import (
	"context"
	"fmt"

	"storefront-service/internal/database"
	"storefront-service/internal/domain"

	"gorm.io/gorm"
)

// GormCustomerRepository is the relational Customer Store
type GormCustomerRepository struct {
	db *gorm.DB
}

func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64, withCarts bool) (*domain.Customer, error) {
	query := r.db.WithContext(ctx)
	if withCarts {
		query = query.
			Preload("Carts", orderByID).
			Preload("Carts.Items", orderByID).
			Preload("Carts.Items.Product")
	}

	var customer domain.Customer
	if err := query.First(&customer, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *GormCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer: %w", err)
	}
	return count > 0, nil
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if err := r.db.WithContext(ctx).Omit("Carts").Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *GormCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	result := r.db.WithContext(ctx).
		Model(customer).
		Select("first_name", "last_name", "email", "address", "updated_at").
		Updates(customer)
	if result.Error != nil {
		return fmt.Errorf("failed to update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Customer{}, id)
	if result.Error != nil {
		if database.IsForeignKeyViolation(result.Error) {
			return domain.ErrCustomerHasCarts
		}
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
