package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a gorm session
type GormStore struct {
	db        *gorm.DB
	products  *GormProductRepository
	customers *GormCustomerRepository
	carts     *GormCartRepository
}

// NewGormStore creates a store bound to db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:        db,
		products:  &GormProductRepository{db: db},
		customers: &GormCustomerRepository{db: db},
		carts:     &GormCartRepository{db: db},
	}
}

func (s *GormStore) Products() ProductRepository   { return s.products }
func (s *GormStore) Customers() CustomerRepository { return s.customers }
func (s *GormStore) Carts() CartRepository         { return s.carts }

func (s *GormStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
