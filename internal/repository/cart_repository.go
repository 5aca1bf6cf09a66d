package repository

import (
	"context"
	"fmt"

	"storefront-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository stores shopping carts and their line items
type GormCartRepository struct {
	db *gorm.DB
}

func (r *GormCartRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", orderByID).
		Preload("Items.Product")
}

func (r *GormCartRepository) FindByID(ctx context.Context, id int64) (*domain.ShoppingCart, error) {
	var cart domain.ShoppingCart
	if err := r.withItems(ctx).First(&cart, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cart, nil
}

func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID int64) ([]domain.ShoppingCart, error) {
	carts := make([]domain.ShoppingCart, 0)
	err := r.withItems(ctx).
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&carts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	return carts, nil
}

func (r *GormCartRepository) ProductInOtherCart(ctx context.Context, customerID, productID int64, excludeCartID *int64) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Joins("JOIN shopping_carts ON shopping_carts.id = cart_items.cart_id").
		Where("shopping_carts.customer_id = ? AND cart_items.product_id = ?", customerID, productID)
	if excludeCartID != nil {
		query = query.Where("cart_items.cart_id <> ?", *excludeCartID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product placement: %w", err)
	}
	return count > 0, nil
}

func (r *GormCartRepository) Create(ctx context.Context, cart *domain.ShoppingCart) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// AddItemQuantity relies on the unique (cart_id, product_id) index so that
// concurrent adds merge into one row instead of racing to insert two. A merge
// whose total would pass domain.MaxQuantity updates nothing and fails with
// domain.ErrQuantityTooLarge.
func (r *GormCartRepository) AddItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartItem, error) {
	db := r.db.WithContext(ctx)

	item := &domain.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		Version:   1,
	}
	// written as a subtraction so the guard itself cannot overflow
	result := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"version":    gorm.Expr("cart_items.version + 1"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("cart_items.quantity <= ? - excluded.quantity", domain.MaxQuantity),
			}},
		}).
		Create(item)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrQuantityTooLarge
	}

	var stored domain.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cart item: %w", err)
	}
	return &stored, nil
}

func (r *GormCartRepository) DecrementItem(ctx context.Context, item *domain.CartItem, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ? AND version = ? AND quantity > ?", item.ID, item.Version, quantity).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", quantity),
			"version":  gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to decrement cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrentModification
	}

	item.Quantity -= quantity
	item.Version++
	return nil
}

func (r *GormCartRepository) DeleteItems(ctx context.Context, cartID int64) error {
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	return nil
}

func (r *GormCartRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.ShoppingCart{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
