package handlers

import (
	"time"

	"storefront-service/internal/validation"

	"github.com/shopspring/decimal"
)

// ProductRequest is the body of a product create or update
// @Description Product fields. Name holds letters and spaces only.
type ProductRequest struct {
	Name     string           `json:"name" example:"Wireless Headphones"`
	Price    *decimal.Decimal `json:"price" swaggertype:"string" example:"59.99"`
	Category string           `json:"category" example:"TECH" enums:"TECH,BEAUTY,FASHION,HOME,SPORTS,BOOKS,GROCERY,TOYS"`
	Rating   *float64         `json:"rating,omitempty" example:"4.5"`
}

func (r ProductRequest) input() validation.ProductInput {
	return validation.ProductInput{
		Name:     r.Name,
		Price:    r.Price,
		Category: r.Category,
		Rating:   r.Rating,
	}
}

// CustomerRequest is the body of a customer create or update
type CustomerRequest struct {
	FirstName string `json:"first_name" example:"Ada"`
	LastName  string `json:"last_name" example:"Lovelace"`
	Email     string `json:"email" example:"ada@example.com"`
	Address   string `json:"address" example:"12 St James Square, London"`
}

func (r CustomerRequest) input() validation.CustomerInput {
	return validation.CustomerInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Address:   r.Address,
	}
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Service   string    `json:"service" example:"storefront-service"`
	Database  string    `json:"database" example:"up"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// ErrorResponse documents the body of every error reply
// @Description Error code, human readable message and details
type ErrorResponse struct {
	Error   string `json:"error" example:"ResourceNotFound"`
	Message string `json:"message" example:"Customer not found with ID: 42"`
	Details string `json:"details" example:""`
}
