package response

import (
	"fmt"
	"net/http"

	"storefront-service/internal/service"
)

// StatusResponse is the envelope returned by cart mutations
type StatusResponse struct {
	StatusCode    int    `json:"status_code" example:"201"`
	StatusMessage string `json:"status_message" example:"Product ID 3 successfully added for customer 1"`
	Count         int    `json:"count" example:"5"`
	CartID        int64  `json:"cart_id,omitempty" example:"7"`
}

// ProductAdded translates the outcome of an add into its envelope. Count is the
// quantity of the line item after the add.
func ProductAdded(result *service.AddProductResult) StatusResponse {
	return StatusResponse{
		StatusCode:    http.StatusCreated,
		StatusMessage: fmt.Sprintf("Product ID %d successfully added for customer %d", result.ProductID, result.CustomerID),
		Count:         result.Quantity,
		CartID:        result.CartID,
	}
}

const (
	ProductRemoved = "Product removed successfully."
	CartDeleted    = "Shopping cart deleted successfully."
)
