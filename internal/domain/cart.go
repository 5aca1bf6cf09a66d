package domain

import (
	"math"
	"time"
)

// MaxQuantity is the largest quantity a line item can hold. The column is a
// 32-bit INTEGER on every supported database.
const MaxQuantity = math.MaxInt32

// ShoppingCart is owned by exactly one customer and holds line items
type ShoppingCart struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	CustomerID int64      `json:"customer_id"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem is one (cart, product, quantity) line.
// Version is bumped on every quantity change for optimistic locking.
type CartItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CartID    int64     `json:"cart_id"`
	ProductID int64     `json:"product_id"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity"`
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RemovalAction is what removing units of a product does to its cart
type RemovalAction int

const (
	// RemoveCart drops the line item together with its whole cart
	RemoveCart RemovalAction = iota + 1
	// DecrementItem lowers the line item's quantity and keeps the cart
	DecrementItem
)

func NewShoppingCart(customerID int64) *ShoppingCart {
	return &ShoppingCart{
		CustomerID: customerID,
		Items:      make([]CartItem, 0),
	}
}

// FindItem returns the line item for productID, if any
func (c *ShoppingCart) FindItem(productID int64) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// OwnedBy reports whether the cart belongs to customerID
func (c *ShoppingCart) OwnedBy(customerID int64) bool {
	return c.CustomerID == customerID
}

// TotalQuantity sums the quantity over every line item
func (c *ShoppingCart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// FirstCartWithProduct scans carts in order and returns the first one holding
// productID together with its line item.
func FirstCartWithProduct(carts []ShoppingCart, productID int64) (*ShoppingCart, *CartItem, bool) {
	for i := range carts {
		if item, ok := carts[i].FindItem(productID); ok {
			return &carts[i], item, true
		}
	}
	return nil, nil, false
}

// PlanRemoval decides the effect of removing quantity units from the item.
// Removing at least the whole line drops the cart.
func (i *CartItem) PlanRemoval(quantity int) (RemovalAction, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if i.Quantity <= quantity {
		return RemoveCart, nil
	}
	return DecrementItem, nil
}
