package repository

import (
	"context"
	"path/filepath"
	"testing"

	"storefront-service/internal/config"
	"storefront-service/internal/database"
	"storefront-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Open(context.Background(), &config.Config{
		DBDriver: database.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "repo.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewGormStore(db.Gorm)
}

func createProduct(t *testing.T, store Store, name string, category domain.Category, rating *float64) *domain.Product {
	t.Helper()
	product := domain.NewProduct(name, decimal.RequireFromString("10.50"), category, rating)
	require.NoError(t, store.Products().Create(context.Background(), product))
	return product
}

func createCustomer(t *testing.T, store Store) *domain.Customer {
	t.Helper()
	customer := domain.NewCustomer("Ada", "Lovelace", "ada@example.com", "London")
	require.NoError(t, store.Customers().Create(context.Background(), customer))
	return customer
}

func ratingOf(f float64) *float64 { return &f }

func TestProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	product := createProduct(t, store, "Mouse", domain.CategoryTech, nil)
	assert.NotZero(t, product.ID)

	found, err := store.Products().FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mouse", found.Name)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("10.5")))
	assert.Nil(t, found.Rating)

	found.Replace(domain.NewProduct("Keyboard", decimal.RequireFromString("20"), domain.CategoryTech, ratingOf(3.5)))
	require.NoError(t, store.Products().Update(ctx, found))

	updated, err := store.Products().FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", updated.Name)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 3.5, *updated.Rating)

	require.NoError(t, store.Products().Delete(ctx, product.ID))
	_, err = store.Products().FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Products().Delete(ctx, product.ID), ErrNotFound)
}

func TestProductRepository_SearchByName(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	createProduct(t, store, "Wireless Mouse", domain.CategoryTech, nil)
	createProduct(t, store, "Mouse Pad", domain.CategoryTech, nil)
	createProduct(t, store, "Lipstick", domain.CategoryBeauty, nil)

	products, err := store.Products().SearchByName(ctx, "MOUSE")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Wireless Mouse", products[0].Name)

	products, err = store.Products().SearchByName(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_FindSuggested(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	low := createProduct(t, store, "Cheap Phone", domain.CategoryTech, ratingOf(2.0))
	unrated := createProduct(t, store, "Mystery Gadget", domain.CategoryTech, nil)
	high := createProduct(t, store, "Great Phone", domain.CategoryTech, ratingOf(4.8))
	excluded := createProduct(t, store, "Owned Laptop", domain.CategoryTech, ratingOf(5.0))
	book := createProduct(t, store, "Novel", domain.CategoryBooks, ratingOf(4.9))
	createProduct(t, store, "Lipstick", domain.CategoryBeauty, ratingOf(5.0))

	products, err := store.Products().FindSuggested(ctx,
		[]int64{excluded.ID},
		[]domain.Category{domain.CategoryTech, domain.CategoryBooks},
	)
	require.NoError(t, err)

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{book.ID, high.ID, low.ID, unrated.ID}, ids)

	products, err = store.Products().FindSuggested(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_CreateAll(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	products := []*domain.Product{
		domain.NewProduct("Mouse", decimal.RequireFromString("5"), domain.CategoryTech, nil),
		domain.NewProduct("Novel", decimal.RequireFromString("12"), domain.CategoryBooks, nil),
	}
	require.NoError(t, store.Products().CreateAll(ctx, products))

	all, err := store.Products().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NotZero(t, products[1].ID)
}

func TestCustomerRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	customer := createCustomer(t, store)

	exists, err := store.Customers().Exists(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	customer.Replace(domain.NewCustomer("Grace", "Hopper", "grace@example.com", "Arlington"))
	require.NoError(t, store.Customers().Update(ctx, customer))

	found, err := store.Customers().FindByID(ctx, customer.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Grace", found.FirstName)

	all, err := store.Customers().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, store.Customers().Delete(ctx, customer.ID))
	_, err = store.Customers().FindByID(ctx, customer.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepository_DeleteWithCartsConflicts(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	customer := createCustomer(t, store)
	require.NoError(t, store.Carts().Create(ctx, domain.NewShoppingCart(customer.ID)))

	err := store.Customers().Delete(ctx, customer.ID)

	assert.ErrorIs(t, err, domain.ErrCustomerHasCarts)
}

func TestCartRepository_AddItemQuantityMerges(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	customer := createCustomer(t, store)
	product := createProduct(t, store, "Mouse", domain.CategoryTech, nil)
	cart := domain.NewShoppingCart(customer.ID)
	require.NoError(t, store.Carts().Create(ctx, cart))

	item, err := store.Carts().AddItemQuantity(ctx, cart.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 1, item.Version)

	item, err = store.Carts().AddItemQuantity(ctx, cart.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 2, item.Version)

	loaded, err := store.Carts().FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "Mouse", loaded.Items[0].Product.Name)
}

func TestCartRepository_DecrementItemOptimisticLock(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	customer := createCustomer(t, store)
	product := createProduct(t, store, "Mouse", domain.CategoryTech, nil)
	cart := domain.NewShoppingCart(customer.ID)
	require.NoError(t, store.Carts().Create(ctx, cart))
	item, err := store.Carts().AddItemQuantity(ctx, cart.ID, product.ID, 5)
	require.NoError(t, err)

	stale := *item
	require.NoError(t, store.Carts().DecrementItem(ctx, item, 2))
	assert.Equal(t, 3, item.Quantity)

	err = store.Carts().DecrementItem(ctx, &stale, 1)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

func TestCartRepository_ProductInOtherCart(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	customer := createCustomer(t, store)
	product := createProduct(t, store, "Mouse", domain.CategoryTech, nil)
	cart := domain.NewShoppingCart(customer.ID)
	require.NoError(t, store.Carts().Create(ctx, cart))
	_, err := store.Carts().AddItemQuantity(ctx, cart.ID, product.ID, 1)
	require.NoError(t, err)

	inOther, err := store.Carts().ProductInOtherCart(ctx, customer.ID, product.ID, nil)
	require.NoError(t, err)
	assert.True(t, inOther)

	inOther, err = store.Carts().ProductInOtherCart(ctx, customer.ID, product.ID, &cart.ID)
	require.NoError(t, err)
	assert.False(t, inOther)

	inOther, err = store.Carts().ProductInOtherCart(ctx, customer.ID+1, product.ID, nil)
	require.NoError(t, err)
	assert.False(t, inOther)
}

func TestCartRepository_Delete(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	customer := createCustomer(t, store)
	product := createProduct(t, store, "Mouse", domain.CategoryTech, nil)
	cart := domain.NewShoppingCart(customer.ID)
	require.NoError(t, store.Carts().Create(ctx, cart))
	_, err := store.Carts().AddItemQuantity(ctx, cart.ID, product.ID, 1)
	require.NoError(t, err)

	// items still reference the cart
	assert.Error(t, store.Carts().Delete(ctx, cart.ID))

	require.NoError(t, store.Carts().DeleteItems(ctx, cart.ID))
	require.NoError(t, store.Carts().Delete(ctx, cart.ID))
	assert.ErrorIs(t, store.Carts().Delete(ctx, cart.ID), ErrNotFound)

	carts, err := store.Carts().FindByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, carts)
}

func TestGormStore_WithinTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	customer := createCustomer(t, store)

	err := store.WithinTransaction(ctx, func(tx Store) error {
		if err := tx.Carts().Create(ctx, domain.NewShoppingCart(customer.ID)); err != nil {
			return err
		}
		return domain.ErrInvalidQuantity
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	carts, err := store.Carts().FindByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, carts)
}
