package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error by its cause
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NotFound"
	KindInvalidInput ErrorKind = "InvalidInput"
	KindConflict     ErrorKind = "Conflict"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Domain errors
var (
	ErrInvalidQuantity        = &DomainError{Kind: KindInvalidInput, Message: "Quantity must be greater than zero."}
	ErrQuantityTooLarge       = &DomainError{Kind: KindInvalidInput, Message: "Quantity must not exceed 2147483647."}
	ErrProductInAnotherCart   = &DomainError{Kind: KindInvalidInput, Message: "Product is already added to a different cart for the customer."}
	ErrCartNotOwned           = &DomainError{Kind: KindInvalidInput, Message: "Cart does not belong to the customer."}
	ErrNoCartsForCustomer     = &DomainError{Kind: KindNotFound, Message: "No shopping carts found for the customer."}
	ErrProductNotInCarts      = &DomainError{Kind: KindNotFound, Message: "Product not found in any cart for the customer."}
	ErrConcurrentModification = &DomainError{Kind: KindConflict, Message: "Cart item was modified concurrently, please retry."}
	ErrProductInUse           = &DomainError{Kind: KindConflict, Message: "Product is referenced by a shopping cart."}
	ErrCustomerHasCarts       = &DomainError{Kind: KindConflict, Message: "Customer still owns shopping carts."}
)

func NewCustomerNotFound(id int64) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("Customer not found with ID: %d", id)}
}

func NewProductNotFound(id int64) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("Product not found with ID: %d", id)}
}

func NewCartNotFound(id int64) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("Cart not found with ID: %d", id)}
}

func NewNoProductsMatching(name string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("No products found with name: %s", name)}
}

// KindOf returns the kind of the first DomainError in err's chain, or ""
// when err is unclassified.
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsInvalidInput(err error) bool { return KindOf(err) == KindInvalidInput }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
