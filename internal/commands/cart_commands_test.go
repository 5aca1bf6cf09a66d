package commands

import (
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProductToCartCommand_Validate(t *testing.T) {
	cartID := int64(7)
	zero := int64(0)

	assert.NoError(t, AddProductToCartCommand{CustomerID: 1, ProductID: 42, Quantity: 3}.Validate())
	assert.NoError(t, AddProductToCartCommand{CustomerID: 1, CartID: &cartID, ProductID: 42, Quantity: 3}.Validate())

	// quantity is checked before anything else
	err := AddProductToCartCommand{CustomerID: 0, ProductID: 0, Quantity: 0}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	var fieldErr *validation.FieldError
	err = AddProductToCartCommand{CustomerID: 1, CartID: &zero, ProductID: 42, Quantity: 1}.Validate()
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "cartId", fieldErr.Field)
}

func TestRemoveProductFromCartCommand_Validate(t *testing.T) {
	assert.NoError(t, RemoveProductFromCartCommand{CustomerID: 1, ProductID: 42, Quantity: 1}.Validate())
	assert.ErrorIs(t, RemoveProductFromCartCommand{CustomerID: 1, ProductID: 42, Quantity: -1}.Validate(), domain.ErrInvalidQuantity)

	var fieldErr *validation.FieldError
	require.ErrorAs(t, RemoveProductFromCartCommand{CustomerID: 1, Quantity: 1}.Validate(), &fieldErr)
	assert.Equal(t, "productId", fieldErr.Field)
}

func TestDeleteCartCommand_Validate(t *testing.T) {
	assert.NoError(t, DeleteCartCommand{CartID: 3}.Validate())
	assert.Error(t, DeleteCartCommand{CartID: 0}.Validate())
}
