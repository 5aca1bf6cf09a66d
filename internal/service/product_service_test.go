package service

import (
	"context"
	"testing"

	"storefront-service/internal/cache"
	"storefront-service/internal/commands"
	"storefront-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func TestProductService_GetProductCachesResult(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	productID := f.product(t, "Keyboard")

	product, err := f.products.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", product.Name)

	cached, err := f.cache.Exists(ctx, cache.ProductKey(productID))
	require.NoError(t, err)
	assert.True(t, cached)

	again, err := f.products.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(again.Price))

	_, err = f.products.GetProduct(ctx, 999)
	assert.EqualError(t, err, "Product not found with ID: 999")
}

func TestProductService_SearchProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "Gaming Mouse")
	f.product(t, "Mouse Pad")
	f.product(t, "Monitor")

	found, err := f.products.SearchProducts(ctx, "mouse")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = f.products.SearchProducts(ctx, "toaster")
	assert.True(t, domain.IsNotFound(err))
	assert.EqualError(t, err, "No products found with name: toaster")
}

func TestProductService_SuggestedProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.products.CreateProducts(ctx, []*domain.Product{
		domain.NewProduct("Laptop", decimal.RequireFromString("999.00"), domain.CategoryTech, rating(4.1)),
		domain.NewProduct("Phone", decimal.RequireFromString("599.00"), domain.CategoryTech, rating(4.8)),
		domain.NewProduct("Tablet", decimal.RequireFromString("399.00"), domain.CategoryTech, nil),
		domain.NewProduct("Novel", decimal.RequireFromString("12.50"), domain.CategoryBooks, rating(4.9)),
	})
	require.NoError(t, err)

	suggested, err := f.products.SuggestedProducts(ctx, []int64{created[0].ID}, []domain.Category{domain.CategoryTech})
	require.NoError(t, err)
	require.Len(t, suggested, 2)
	assert.Equal(t, "Phone", suggested[0].Name)
	assert.Equal(t, "Tablet", suggested[1].Name)

	none, err := f.products.SuggestedProducts(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductService_UpdateProductInvalidatesCartViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customerID := f.customer(t)
	productID := f.product(t, "Keyboard")
	f.add(t, customerID, nil, productID, 1)

	_, err := f.carts.GetCustomerCarts(ctx, customerID)
	require.NoError(t, err)

	updated, err := f.products.UpdateProduct(ctx, productID,
		domain.NewProduct("Mechanical Keyboard", decimal.RequireFromString("129.00"), domain.CategoryTech, rating(4.5)))
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", updated.Name)

	carts, err := f.carts.GetCustomerCarts(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", carts[0].Items[0].Product.Name)

	_, err = f.products.UpdateProduct(ctx, 999, updated)
	assert.True(t, domain.IsNotFound(err))
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customerID := f.customer(t)
	inCart := f.product(t, "Keyboard")
	free := f.product(t, "Cable")
	f.add(t, customerID, nil, inCart, 1)

	err := f.products.DeleteProduct(ctx, inCart)
	assert.ErrorIs(t, err, domain.ErrProductInUse)
	assert.True(t, domain.IsConflict(err))

	require.NoError(t, f.products.DeleteProduct(ctx, free))
	assert.True(t, domain.IsNotFound(f.products.DeleteProduct(ctx, free)))

	// once the cart is gone the product can be removed
	require.NoError(t, f.carts.RemoveProductFromCart(ctx, commands.RemoveProductFromCartCommand{
		CustomerID: customerID, ProductID: inCart, Quantity: 1,
	}))
	assert.NoError(t, f.products.DeleteProduct(ctx, inCart))
}
