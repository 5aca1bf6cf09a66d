package validation

import (
	"strings"
	"testing"

	"storefront-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func rating(f float64) *float64 {
	return &f
}

func TestProduct_Valid(t *testing.T) {
	product, err := Product(ProductInput{
		Name:     "  Wireless Mouse ",
		Price:    price("19.99"),
		Category: "tech",
		Rating:   rating(4.2),
	})

	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", product.Name)
	assert.Equal(t, domain.CategoryTech, product.Category)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestProduct_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input ProductInput
		field string
	}{
		{"blank name", ProductInput{Name: "   ", Price: price("1"), Category: "TECH"}, "name"},
		{"digits in name", ProductInput{Name: "Mouse 2000", Price: price("1"), Category: "TECH"}, "name"},
		{"long name", ProductInput{Name: strings.Repeat("a", 101), Price: price("1"), Category: "TECH"}, "name"},
		{"missing price", ProductInput{Name: "Mouse", Category: "TECH"}, "price"},
		{"negative price", ProductInput{Name: "Mouse", Price: price("-0.01"), Category: "TECH"}, "price"},
		{"missing category", ProductInput{Name: "Mouse", Price: price("1")}, "category"},
		{"unknown category", ProductInput{Name: "Mouse", Price: price("1"), Category: "WEAPONS"}, "category"},
		{"rating too high", ProductInput{Name: "Mouse", Price: price("1"), Category: "TECH", Rating: rating(5.1)}, "rating"},
		{"rating negative", ProductInput{Name: "Mouse", Price: price("1"), Category: "TECH", Rating: rating(-1)}, "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Product(tt.input)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestProduct_ZeroPriceAllowed(t *testing.T) {
	_, err := Product(ProductInput{Name: "Sample", Price: price("0"), Category: "BEAUTY"})

	assert.NoError(t, err)
}

func TestCustomer_Valid(t *testing.T) {
	customer, err := Customer(CustomerInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Address:   "12 St James's Square, London",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", customer.FullName())
}

func TestCustomer_Invalid(t *testing.T) {
	valid := CustomerInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Address: "London"}

	tests := []struct {
		name   string
		mutate func(*CustomerInput)
		field  string
	}{
		{"blank first name", func(in *CustomerInput) { in.FirstName = "" }, "first_name"},
		{"first name with digits", func(in *CustomerInput) { in.FirstName = "Ada1" }, "first_name"},
		{"first name with tab", func(in *CustomerInput) { in.FirstName = "Ada\tMary" }, "first_name"},
		{"last name with newline", func(in *CustomerInput) { in.LastName = "Love\nlace" }, "last_name"},
		{"last name with no-break space", func(in *CustomerInput) { in.LastName = "Love\u00a0lace" }, "last_name"},
		{"long last name", func(in *CustomerInput) { in.LastName = strings.Repeat("b", 51) }, "last_name"},
		{"bad email", func(in *CustomerInput) { in.Email = "not-an-email" }, "email"},
		{"blank address", func(in *CustomerInput) { in.Address = " " }, "address"},
		{"long address", func(in *CustomerInput) { in.Address = strings.Repeat("x", 201) }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			_, err := Customer(input)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestQuantityAndID(t *testing.T) {
	assert.NoError(t, Quantity(1))
	assert.ErrorIs(t, Quantity(0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, Quantity(-3), domain.ErrInvalidQuantity)
	assert.NoError(t, Quantity(domain.MaxQuantity))
	assert.ErrorIs(t, Quantity(domain.MaxQuantity+1), domain.ErrQuantityTooLarge)
	assert.True(t, domain.IsInvalidInput(Quantity(domain.MaxQuantity+1)))

	assert.NoError(t, ID("customerId", 1))
	var fieldErr *FieldError
	require.ErrorAs(t, ID("customerId", 0), &fieldErr)
	assert.Equal(t, "customerId", fieldErr.Field)
}

func TestCategories(t *testing.T) {
	categories, err := Categories([]string{"tech", "BOOKS"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{domain.CategoryTech, domain.CategoryBooks}, categories)

	_, err = Categories([]string{"tech", "nope"})
	assert.Error(t, err)
}
