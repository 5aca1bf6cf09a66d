package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the item type of a product
type Category string

const (
	CategoryTech    Category = "TECH"
	CategoryBeauty  Category = "BEAUTY"
	CategoryFashion Category = "FASHION"
	CategoryHome    Category = "HOME"
	CategorySports  Category = "SPORTS"
	CategoryBooks   Category = "BOOKS"
	CategoryGrocery Category = "GROCERY"
	CategoryToys    Category = "TOYS"
)

// Categories lists every supported category in declaration order
var Categories = []Category{
	CategoryTech,
	CategoryBeauty,
	CategoryFashion,
	CategoryHome,
	CategorySports,
	CategoryBooks,
	CategoryGrocery,
	CategoryToys,
}

// ParseCategory parses a category name case-insensitively
func ParseCategory(value string) (Category, error) {
	candidate := Category(strings.ToUpper(strings.TrimSpace(value)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", &DomainError{Kind: KindInvalidInput, Message: fmt.Sprintf("Unknown item type: %s", value)}
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry
type Product struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2)"`
	Category  Category        `json:"category"`
	Rating    *float64        `json:"rating,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewProduct creates a product that has not been persisted yet
func NewProduct(name string, price decimal.Decimal, category Category, rating *float64) *Product {
	return &Product{
		Name:     name,
		Price:    price,
		Category: category,
		Rating:   rating,
	}
}

// Replace overwrites every mutable field with the values of other.
// Identity and creation time are kept.
func (p *Product) Replace(other *Product) {
	p.Name = other.Name
	p.Price = other.Price
	p.Category = other.Category
	p.Rating = other.Rating
}
