package handlers

import (
	"context"
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/validation"
	stderrors "storefront-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductService interface {
	CreateProducts(ctx context.Context, products []*domain.Product) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, name string) ([]domain.Product, error)
	SuggestedProducts(ctx context.Context, excludedIDs []int64, categories []domain.Category) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, replacement *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ProductHandler struct {
	logger  *zap.Logger
	service ProductService
}

func NewProductHandler(logger *zap.Logger, service ProductService) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		service: service,
	}
}

// CreateProducts handles POST /products
// @Summary      Create products
// @Description  Creates every product of the array, or none of them when one is invalid.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      []ProductRequest  true  "Products to create"
// @Success      201      {array}   domain.Product
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) CreateProducts(c *gin.Context) {
	var req []ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		fail(c, stderrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}
	if len(req) == 0 {
		fail(c, stderrors.NewValidationError("at least one product is required", "body"))
		return
	}

	products := make([]*domain.Product, 0, len(req))
	for i, item := range req {
		product, err := validation.Product(item.input())
		if err != nil {
			h.logger.Warn("Invalid product", zap.Int("index", i), zap.Error(err))
			fail(c, err)
			return
		}
		products = append(products, product)
	}

	created, err := h.service.CreateProducts(c.Request.Context(), products)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListProducts handles GET /products
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// SearchProducts handles GET /products/search
// @Summary      Search products by name
// @Description  Case-insensitive substring match on the product name.
// @Tags         products
// @Produce      json
// @Param        name  query     string  true  "Name fragment"
// @Success      200   {array}   domain.Product
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse  "No product matches"
// @Router       /products/search [get]
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		fail(c, stderrors.NewValidationError("name must not be blank", "name"))
		return
	}

	products, err := h.service.SearchProducts(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// SuggestedProducts handles GET /products/suggested
// @Summary      Suggest products
// @Description  Products of the given item types, best rated first, minus the excluded ids.
// @Tags         products
// @Produce      json
// @Param        excludedProductIds  query     string  false  "Comma separated product ids"  example(1,2)
// @Param        itemTypes           query     string  false  "Comma separated item types"   example(TECH,BOOKS)
// @Success      200                 {array}   domain.Product
// @Success      204                 "No suggestions"
// @Failure      400                 {object}  ErrorResponse
// @Router       /products/suggested [get]
func (h *ProductHandler) SuggestedProducts(c *gin.Context) {
	rawIDs := queryList(c, "excludedProductIds")
	excluded := make([]int64, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fail(c, stderrors.NewInvalidRequest("invalid product id", "Query: excludedProductIds="+raw))
			return
		}
		excluded = append(excluded, id)
	}

	categories, err := validation.Categories(queryList(c, "itemTypes"))
	if err != nil {
		fail(c, err)
		return
	}

	products, err := h.service.SuggestedProducts(c.Request.Context(), excluded, categories)
	if err != nil {
		fail(c, err)
		return
	}
	if len(products) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProduct handles PUT /products/:id
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int             true  "Product ID"
// @Param        request  body      ProductRequest  true  "Replacement fields"
// @Success      200      {object}  domain.Product
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, stderrors.NewInvalidRequest("invalid request body", err.Error()))
		return
	}
	replacement, err := validation.Product(req.input())
	if err != nil {
		fail(c, err)
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, replacement)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  int  true  "Product ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Product is in a cart"
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
