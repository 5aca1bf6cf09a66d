package handlers

import (
	"context"
	"net/http"

	"storefront-service/internal/domain"
	"storefront-service/internal/validation"
	stderrors "storefront-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, replacement *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type CustomerHandler struct {
	logger  *zap.Logger
	service CustomerService
}

func NewCustomerHandler(logger *zap.Logger, service CustomerService) *CustomerHandler {
	return &CustomerHandler{
		logger:  logger,
		service: service,
	}
}

// bind decodes and validates a customer body
func (h *CustomerHandler) bind(c *gin.Context) (*domain.Customer, error) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		return nil, stderrors.NewInvalidRequest("invalid request body", err.Error())
	}
	return validation.Customer(req.input())
}

// CreateCustomer handles POST /api/customers
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CustomerRequest  true  "Customer"
// @Success      201      {object}  domain.Customer
// @Failure      400      {object}  ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	customer, err := h.bind(c)
	if err != nil {
		fail(c, err)
		return
	}

	created, err := h.service.CreateCustomer(c.Request.Context(), customer)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListCustomers handles GET /api/customers
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Success      200  {array}  domain.Customer
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/customers/:id
// @Summary      Get a customer with its carts
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "Customer ID"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /api/customers/:id
// @Summary      Replace a customer's profile
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int              true  "Customer ID"
// @Param        request  body      CustomerRequest  true  "Customer"
// @Success      200      {object}  domain.Customer
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	replacement, err := h.bind(c)
	if err != nil {
		fail(c, err)
		return
	}

	customer, err := h.service.UpdateCustomer(c.Request.Context(), id, replacement)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/customers/:id
// @Summary      Delete a customer
// @Tags         customers
// @Security     BearerAuth
// @Param        id   path  int  true  "Customer ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Customer still owns carts"
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
