package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/commands"
	"storefront-service/internal/domain"
	"storefront-service/internal/events"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AddProductResult describes the line item left behind by an add
type AddProductResult struct {
	CustomerID  int64
	CartID      int64
	ProductID   int64
	Quantity    int
	CartCreated bool
}

// CartService is the cart mutation engine. Every mutation runs in a single
// transaction; cache invalidation and events follow a successful commit.
type CartService struct {
	store     repository.Store
	views     *CartViews
	publisher events.EventPublisher
	logger    *zap.Logger
	fills     singleflight.Group
}

// cartFillTimeout bounds a shared cart read once it is detached from the
// caller that started it
const cartFillTimeout = 10 * time.Second

func NewCartService(store repository.Store, views *CartViews, publisher events.EventPublisher, logger *zap.Logger) *CartService {
	return &CartService{
		store:     store,
		views:     views,
		publisher: publisher,
		logger:    logger,
	}
}

// AddProductToCart adds cmd.Quantity units of a product to the given cart, or
// to a new cart when cmd.CartID is nil
func (s *CartService) AddProductToCart(ctx context.Context, cmd commands.AddProductToCartCommand) (*AddProductResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &AddProductResult{CustomerID: cmd.CustomerID, ProductID: cmd.ProductID}

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		inOtherCart, err := tx.Carts().ProductInOtherCart(ctx, cmd.CustomerID, cmd.ProductID, cmd.CartID)
		if err != nil {
			return err
		}
		if inOtherCart {
			return domain.ErrProductInAnotherCart
		}

		cartID, created, err := s.resolveCart(ctx, tx, cmd)
		if err != nil {
			return err
		}
		result.CartID = cartID
		result.CartCreated = created

		if _, err := tx.Products().FindByID(ctx, cmd.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NewProductNotFound(cmd.ProductID)
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		item, err := tx.Carts().AddItemQuantity(ctx, cartID, cmd.ProductID, cmd.Quantity)
		if err != nil {
			return err
		}
		result.Quantity = item.Quantity
		return nil
	})
	if err != nil {
		s.logger.Warn("Unable to add product to cart",
			zap.Int64("customer_id", cmd.CustomerID),
			zap.Int64("product_id", cmd.ProductID),
			zap.Int("quantity", cmd.Quantity),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Product added to cart",
		zap.Int64("customer_id", result.CustomerID),
		zap.Int64("cart_id", result.CartID),
		zap.Int64("product_id", result.ProductID),
		zap.Int("quantity", result.Quantity),
		zap.Bool("cart_created", result.CartCreated),
	)

	s.invalidateCustomer(ctx, cmd.CustomerID)
	now := time.Now().UTC()
	if result.CartCreated {
		s.publish(ctx, events.CartCreatedEvent{CartID: result.CartID, CustomerID: result.CustomerID, OccurredAt: now})
	}
	s.publish(ctx, events.CartItemAddedEvent{
		CartID:      result.CartID,
		CustomerID:  result.CustomerID,
		ProductID:   result.ProductID,
		Quantity:    cmd.Quantity,
		NewQuantity: result.Quantity,
		OccurredAt:  now,
	})

	return result, nil
}

func (s *CartService) resolveCart(ctx context.Context, tx repository.Store, cmd commands.AddProductToCartCommand) (int64, bool, error) {
	if cmd.CartID != nil {
		cart, err := tx.Carts().FindByID(ctx, *cmd.CartID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, false, domain.NewCartNotFound(*cmd.CartID)
			}
			return 0, false, fmt.Errorf("failed to load cart: %w", err)
		}
		if !cart.OwnedBy(cmd.CustomerID) {
			return 0, false, domain.ErrCartNotOwned
		}
		return cart.ID, false, nil
	}

	exists, err := tx.Customers().Exists(ctx, cmd.CustomerID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, domain.NewCustomerNotFound(cmd.CustomerID)
	}

	cart := domain.NewShoppingCart(cmd.CustomerID)
	if err := tx.Carts().Create(ctx, cart); err != nil {
		return 0, false, err
	}
	return cart.ID, true, nil
}

// RemoveProductFromCart removes units of a product from the first of the
// customer's carts holding it. Dropping the whole line deletes that cart.
func (s *CartService) RemoveProductFromCart(ctx context.Context, cmd commands.RemoveProductFromCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var removed events.CartItemRemovedEvent
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		carts, err := tx.Carts().FindByCustomer(ctx, cmd.CustomerID)
		if err != nil {
			return err
		}
		if len(carts) == 0 {
			return domain.ErrNoCartsForCustomer
		}

		cart, item, ok := domain.FirstCartWithProduct(carts, cmd.ProductID)
		if !ok {
			return domain.ErrProductNotInCarts
		}

		action, err := item.PlanRemoval(cmd.Quantity)
		if err != nil {
			return err
		}

		removed = events.CartItemRemovedEvent{
			CartID:     cart.ID,
			CustomerID: cmd.CustomerID,
			ProductID:  cmd.ProductID,
			Quantity:   cmd.Quantity,
		}

		switch action {
		case domain.RemoveCart:
			if err := tx.Carts().DeleteItems(ctx, cart.ID); err != nil {
				return err
			}
			if err := tx.Carts().Delete(ctx, cart.ID); err != nil {
				return err
			}
			removed.CartDeleted = true
		case domain.DecrementItem:
			if err := tx.Carts().DecrementItem(ctx, item, cmd.Quantity); err != nil {
				return err
			}
			removed.Remaining = item.Quantity
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Unable to remove product from cart",
			zap.Int64("customer_id", cmd.CustomerID),
			zap.Int64("product_id", cmd.ProductID),
			zap.Int("quantity", cmd.Quantity),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("Product removed from cart",
		zap.Int64("customer_id", cmd.CustomerID),
		zap.Int64("cart_id", removed.CartID),
		zap.Int64("product_id", cmd.ProductID),
		zap.Int("remaining", removed.Remaining),
		zap.Bool("cart_deleted", removed.CartDeleted),
	)

	s.invalidateCustomer(ctx, cmd.CustomerID)
	removed.OccurredAt = time.Now().UTC()
	s.publish(ctx, removed)
	if removed.CartDeleted {
		s.publish(ctx, events.CartDeletedEvent{CartID: removed.CartID, CustomerID: cmd.CustomerID, OccurredAt: removed.OccurredAt})
	}

	return nil
}

// DeleteCart deletes a cart and all its line items unconditionally
func (s *CartService) DeleteCart(ctx context.Context, cmd commands.DeleteCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var customerID int64
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().FindByID(ctx, cmd.CartID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NewCartNotFound(cmd.CartID)
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}
		customerID = cart.CustomerID

		if err := tx.Carts().DeleteItems(ctx, cart.ID); err != nil {
			return err
		}
		return tx.Carts().Delete(ctx, cart.ID)
	})
	if err != nil {
		s.logger.Warn("Unable to delete cart", zap.Int64("cart_id", cmd.CartID), zap.Error(err))
		return err
	}

	s.logger.Info("Cart deleted",
		zap.Int64("cart_id", cmd.CartID),
		zap.Int64("customer_id", customerID),
	)

	s.invalidateCustomer(ctx, customerID)
	s.publish(ctx, events.CartDeletedEvent{CartID: cmd.CartID, CustomerID: customerID, OccurredAt: time.Now().UTC()})

	return nil
}

// GetCustomerCarts returns every cart of the customer with items and products
func (s *CartService) GetCustomerCarts(ctx context.Context, customerID int64) ([]domain.ShoppingCart, error) {
	if carts, ok := s.views.Get(ctx, customerID); ok {
		return carts, nil
	}

	// Concurrent misses for the same customer share one database read. The
	// read is detached from the caller so one cancellation does not fail
	// every waiter.
	stamp := s.views.stamp(customerID)
	fill := s.fills.DoChan(s.views.fillKey(customerID, stamp), func() (interface{}, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cartFillTimeout)
		defer cancel()

		exists, err := s.store.Customers().Exists(fillCtx, customerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.NewCustomerNotFound(customerID)
		}

		carts, err := s.store.Carts().FindByCustomer(fillCtx, customerID)
		if err != nil {
			return nil, err
		}

		s.views.Put(fillCtx, customerID, stamp, carts)
		return carts, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-fill:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.([]domain.ShoppingCart), nil
	}
}

func (s *CartService) invalidateCustomer(ctx context.Context, customerID int64) {
	s.views.Invalidate(ctx, customerID)
}

func (s *CartService) publish(ctx context.Context, event interface{}) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event-type", events.EventType(event)),
			zap.Error(err),
		)
	}
}
