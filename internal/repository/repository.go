package repository

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
)

// ErrNotFound is returned when a lookup by id matches no row
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the catalog persistence operations
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	// SearchByName matches a case-insensitive substring of the name
	SearchByName(ctx context.Context, name string) ([]domain.Product, error)
	// FindSuggested returns products outside excludedIDs whose category is one
	// of categories, best rated first
	FindSuggested(ctx context.Context, excludedIDs []int64, categories []domain.Category) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	CreateAll(ctx context.Context, products []*domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository defines the customer persistence operations
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64, withCarts bool) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int64) error
}

// CartRepository defines the shopping cart persistence operations.
// Carts are always returned with their line items and products loaded.
type CartRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.ShoppingCart, error)
	// FindByCustomer returns the customer's carts ordered by id
	FindByCustomer(ctx context.Context, customerID int64) ([]domain.ShoppingCart, error)
	// ProductInOtherCart reports whether any cart of the customer, other than
	// excludeCartID when given, holds the product
	ProductInOtherCart(ctx context.Context, customerID, productID int64, excludeCartID *int64) (bool, error)
	Create(ctx context.Context, cart *domain.ShoppingCart) error
	// AddItemQuantity inserts the line item or adds quantity to the existing one
	AddItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartItem, error)
	// DecrementItem lowers the item's quantity if its version is unchanged
	DecrementItem(ctx context.Context, item *domain.CartItem, quantity int) error
	DeleteItems(ctx context.Context, cartID int64) error
	Delete(ctx context.Context, id int64) error
}

// Store groups the repositories sharing one database session
type Store interface {
	Products() ProductRepository
	Customers() CustomerRepository
	Carts() CartRepository
	// WithinTransaction runs fn with a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}
