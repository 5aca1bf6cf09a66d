package handlers

import (
	"context"

	"storefront-service/internal/commands"
	"storefront-service/internal/domain"
	"storefront-service/internal/service"

	"github.com/stretchr/testify/mock"
)

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) AddProductToCart(ctx context.Context, cmd commands.AddProductToCartCommand) (*service.AddProductResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AddProductResult), args.Error(1)
}

func (m *mockCartService) RemoveProductFromCart(ctx context.Context, cmd commands.RemoveProductFromCartCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *mockCartService) DeleteCart(ctx context.Context, cmd commands.DeleteCartCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *mockCartService) GetCustomerCarts(ctx context.Context, customerID int64) ([]domain.ShoppingCart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShoppingCart), args.Error(1)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) CreateProducts(ctx context.Context, products []*domain.Product) ([]*domain.Product, error) {
	args := m.Called(ctx, products)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *mockProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductService) SearchProducts(ctx context.Context, name string) ([]domain.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductService) SuggestedProducts(ctx context.Context, excludedIDs []int64, categories []domain.Category) ([]domain.Product, error) {
	args := m.Called(ctx, excludedIDs, categories)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, id int64, replacement *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, id, replacement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCustomerService struct {
	mock.Mock
}

func (m *mockCustomerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockCustomerService) UpdateCustomer(ctx context.Context, id int64, replacement *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, id, replacement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
