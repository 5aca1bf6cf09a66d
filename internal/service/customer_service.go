package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

// CustomerService manages customer records
type CustomerService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewCustomerService(store repository.Store, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: logger,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}
	s.logger.Info("Customer created", zap.Int64("customer_id", customer.ID))
	return customer, nil
}

// GetCustomer returns the customer together with its carts
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.store.Customers().FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewCustomerNotFound(id)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers().FindAll(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, replacement *domain.Customer) (*domain.Customer, error) {
	var updated *domain.Customer
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().FindByID(ctx, id, false)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NewCustomerNotFound(id)
			}
			return fmt.Errorf("failed to load customer: %w", err)
		}

		customer.Replace(replacement)
		if err := tx.Customers().Update(ctx, customer); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Customer updated", zap.Int64("customer_id", id))
	return updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.store.Customers().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewCustomerNotFound(id)
		}
		return err
	}
	s.logger.Info("Customer deleted", zap.Int64("customer_id", id))
	return nil
}
