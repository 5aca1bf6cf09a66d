package domain

import "time"

// Customer owns zero or more shopping carts
type Customer struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Carts     []ShoppingCart `json:"shopping_carts,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewCustomer(firstName, lastName, email, address string) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Address:   address,
	}
}

// Replace overwrites the customer's profile fields. Owned carts are untouched.
func (c *Customer) Replace(other *Customer) {
	c.FirstName = other.FirstName
	c.LastName = other.LastName
	c.Email = other.Email
	c.Address = other.Address
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
