// Package validation holds the explicit boundary checks run by the HTTP
// handlers before any input reaches the services.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"storefront-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var lettersAndSpaces = regexp.MustCompile(`^[a-zA-Z ]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return lettersAndSpaces.MatchString(fl.Field().String())
	})
	return v
}

// FieldError reports the first rule a field failed
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ProductInput is the unvalidated shape of a product create/update request
type ProductInput struct {
	Name     string
	Price    *decimal.Decimal
	Category string
	Rating   *float64
}

// CustomerInput is the unvalidated shape of a customer create/update request
type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
}

// Product checks every product rule and returns the domain value to persist
func Product(in ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if err := check("name", name, "required,max=100,alphaspace"); err != nil {
		return nil, err
	}
	if in.Price == nil {
		return nil, &FieldError{Field: "price", Message: "price is required"}
	}
	if in.Price.IsNegative() {
		return nil, &FieldError{Field: "price", Message: "price must not be negative"}
	}
	category, err := Category(in.Category)
	if err != nil {
		return nil, err
	}
	if in.Rating != nil {
		if err := check("rating", *in.Rating, "gte=0,lte=5"); err != nil {
			return nil, err
		}
	}
	return domain.NewProduct(name, *in.Price, category, in.Rating), nil
}

// Customer checks every customer rule and returns the domain value to persist
func Customer(in CustomerInput) (*domain.Customer, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(in.Email)
	address := strings.TrimSpace(in.Address)

	if err := check("first_name", firstName, "required,max=50,alphaspace"); err != nil {
		return nil, err
	}
	if err := check("last_name", lastName, "required,max=50,alphaspace"); err != nil {
		return nil, err
	}
	if err := check("email", email, "required,email"); err != nil {
		return nil, err
	}
	if err := check("address", address, "required,max=200"); err != nil {
		return nil, err
	}
	return domain.NewCustomer(firstName, lastName, email, address), nil
}

// Category parses a required category value
func Category(value string) (domain.Category, error) {
	if strings.TrimSpace(value) == "" {
		return "", &FieldError{Field: "category", Message: "category is required"}
	}
	category, err := domain.ParseCategory(value)
	if err != nil {
		return "", &FieldError{Field: "category", Message: err.Error()}
	}
	return category, nil
}

// Categories parses a list of categories, rejecting unknown ones
func Categories(values []string) ([]domain.Category, error) {
	categories := make([]domain.Category, 0, len(values))
	for _, value := range values {
		category, err := Category(value)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// Quantity requires a strictly positive quantity the database can store
func Quantity(quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if quantity > domain.MaxQuantity {
		return domain.ErrQuantityTooLarge
	}
	return nil
}

// ID requires a strictly positive identifier
func ID(field string, id int64) error {
	return check(field, id, "gt=0")
}

func check(field string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s is invalid", field)}
	}
	return &FieldError{Field: field, Message: describe(field, validationErrors[0])}
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be blank", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "alphaspace":
		return fmt.Sprintf("%s must contain only letters and spaces", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0.0 and 5.0", field)
	case "gt":
		return fmt.Sprintf("%s must be a positive number", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
