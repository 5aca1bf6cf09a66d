package commands

import (
	"storefront-service/internal/validation"
)

// AddProductToCartCommand adds quantity units of a product to a customer's cart.
// A nil CartID asks for a new cart.
type AddProductToCartCommand struct {
	CustomerID int64
	CartID     *int64
	ProductID  int64
	Quantity   int
}

// RemoveProductFromCartCommand removes quantity units of a product from
// whichever of the customer's carts holds it
type RemoveProductFromCartCommand struct {
	CustomerID int64
	ProductID  int64
	Quantity   int
}

// DeleteCartCommand deletes a cart together with its line items
type DeleteCartCommand struct {
	CartID int64
}

func (c AddProductToCartCommand) Validate() error {
	if err := validation.Quantity(c.Quantity); err != nil {
		return err
	}
	if err := validation.ID("customerId", c.CustomerID); err != nil {
		return err
	}
	if c.CartID != nil {
		if err := validation.ID("cartId", *c.CartID); err != nil {
			return err
		}
	}
	return validation.ID("productId", c.ProductID)
}

func (c RemoveProductFromCartCommand) Validate() error {
	if err := validation.Quantity(c.Quantity); err != nil {
		return err
	}
	if err := validation.ID("customerId", c.CustomerID); err != nil {
		return err
	}
	return validation.ID("productId", c.ProductID)
}

func (c DeleteCartCommand) Validate() error {
	return validation.ID("cartId", c.CartID)
}
