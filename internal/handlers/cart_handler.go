package handlers

import (
	"context"
	"net/http"

	"storefront-service/internal/commands"
	"storefront-service/internal/domain"
	"storefront-service/internal/response"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartService is the cart mutation engine as seen by the HTTP layer
type CartService interface {
	AddProductToCart(ctx context.Context, cmd commands.AddProductToCartCommand) (*service.AddProductResult, error)
	RemoveProductFromCart(ctx context.Context, cmd commands.RemoveProductFromCartCommand) error
	DeleteCart(ctx context.Context, cmd commands.DeleteCartCommand) error
	GetCustomerCarts(ctx context.Context, customerID int64) ([]domain.ShoppingCart, error)
}

type CartHandler struct {
	logger  *zap.Logger
	service CartService
}

func NewCartHandler(logger *zap.Logger, service CartService) *CartHandler {
	return &CartHandler{
		logger:  logger,
		service: service,
	}
}

// GetCustomerCarts handles GET /api/shopping-cart/:customerId/carts
// @Summary      List a customer's carts
// @Description  Returns every cart of the customer with its line items and products.
// @Tags         shopping-cart
// @Produce      json
// @Param        customerId  path      int  true  "Customer ID"
// @Success      200         {array}   domain.ShoppingCart
// @Failure      400         {object}  ErrorResponse  "Invalid customer id"
// @Failure      404         {object}  ErrorResponse  "Customer not found"
// @Router       /api/shopping-cart/{customerId}/carts [get]
func (h *CartHandler) GetCustomerCarts(c *gin.Context) {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		fail(c, err)
		return
	}

	carts, err := h.service.GetCustomerCarts(c.Request.Context(), customerID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, carts)
}

// AddProduct handles POST /api/shopping-cart/add-product
// @Summary      Add a product to a cart
// @Description  Adds quantity units of a product. Without cartId a new cart is created. A product already held in a different cart of the same customer is rejected.
// @Description  **Idempotency**: send X-Request-ID to have retries return the first response.
// @Tags         shopping-cart
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for idempotency"
// @Param        customerId    query     int     true   "Customer ID"
// @Param        cartId        query     int     false  "Cart ID"
// @Param        productId     query     int     true   "Product ID"
// @Param        quantity      query     int     true   "Units to add (> 0)"
// @Success      200           {object}  response.StatusResponse
// @Failure      400           {object}  ErrorResponse  "Invalid quantity, product in another cart or cart of another customer"
// @Failure      404           {object}  ErrorResponse  "Customer, cart or product not found"
// @Failure      500           {object}  ErrorResponse
// @Router       /api/shopping-cart/add-product [post]
func (h *CartHandler) AddProduct(c *gin.Context) {
	var cmd commands.AddProductToCartCommand
	var err error

	if cmd.CustomerID, err = queryInt64(c, "customerId"); err != nil {
		fail(c, err)
		return
	}
	if cmd.CartID, err = optionalQueryInt64(c, "cartId"); err != nil {
		fail(c, err)
		return
	}
	if cmd.ProductID, err = queryInt64(c, "productId"); err != nil {
		fail(c, err)
		return
	}
	if cmd.Quantity, err = queryInt(c, "quantity"); err != nil {
		fail(c, err)
		return
	}

	result, err := h.service.AddProductToCart(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ProductAdded(result))
}

// RemoveProduct handles DELETE /api/shopping-cart/remove-product
// @Summary      Remove units of a product
// @Description  Removes quantity units from the first cart holding the product. Removing all remaining units deletes that whole cart.
// @Tags         shopping-cart
// @Produce      plain
// @Param        X-Request-ID  header    string  false  "Request ID for idempotency"
// @Param        customerId    query     int     true   "Customer ID"
// @Param        productId     query     int     true   "Product ID"
// @Param        quantity      query     int     true   "Units to remove (> 0)"
// @Success      200           {string}  string  "Product removed successfully."
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse  "No carts, or product not in any cart"
// @Failure      409           {object}  ErrorResponse  "Concurrent modification"
// @Router       /api/shopping-cart/remove-product [delete]
func (h *CartHandler) RemoveProduct(c *gin.Context) {
	var cmd commands.RemoveProductFromCartCommand
	var err error

	if cmd.CustomerID, err = queryInt64(c, "customerId"); err != nil {
		fail(c, err)
		return
	}
	if cmd.ProductID, err = queryInt64(c, "productId"); err != nil {
		fail(c, err)
		return
	}
	if cmd.Quantity, err = queryInt(c, "quantity"); err != nil {
		fail(c, err)
		return
	}

	if err := h.service.RemoveProductFromCart(c.Request.Context(), cmd); err != nil {
		fail(c, err)
		return
	}

	c.String(http.StatusOK, response.ProductRemoved)
}

// DeleteCart handles DELETE /api/shopping-cart/:cartId
// @Summary      Delete a cart
// @Description  Deletes the cart and all of its line items.
// @Tags         shopping-cart
// @Produce      plain
// @Param        X-Request-ID  header    string  false  "Request ID for idempotency"
// @Param        cartId        path      int     true   "Cart ID"
// @Success      200           {string}  string  "Shopping cart deleted successfully."
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse  "Cart not found"
// @Router       /api/shopping-cart/{cartId} [delete]
func (h *CartHandler) DeleteCart(c *gin.Context) {
	cartID, err := pathID(c, "cartId")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.service.DeleteCart(c.Request.Context(), commands.DeleteCartCommand{CartID: cartID}); err != nil {
		fail(c, err)
		return
	}

	c.String(http.StatusOK, response.CartDeleted)
}
