package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrInvalidPrice  = errors.New("price must be at least 1 voucher")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// Product is a catalog item priced in vouchers. Stock and the purchase
// counter are only ever moved through the conditional settlement path.
type Product struct {
	id          uuid.UUID
	name        string
	description string
	price       int
	stock       int
	purchases   int
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProduct(name, description string, price, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price < 1 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	return &Product{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
		price:       price,
		stock:       stock,
		active:      true,
	}, nil
}

func ReconstructProduct(id uuid.UUID, name, description string, price, stock, purchases int, active bool, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
		purchases:   purchases,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Available reports whether the product can currently be ordered at all.
func (p *Product) Available() bool {
	return p.active && p.stock > 0
}

// HasStock reports whether qty units can be taken from current stock.
func (p *Product) HasStock(qty int) bool {
	return p.stock >= qty
}

func (p *Product) ID() uuid.UUID        { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() int           { return p.price }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) Purchases() int       { return p.purchases }
func (p *Product) IsActive() bool       { return p.active }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
