package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock  = errors.New("product is out of stock")
	ErrInvalidItem = errors.New("invalid product")
)

// Kind describes which optional traits a product carries
type Kind string

const (
	// KindPlain products never expire and are never shipped (e.g. a scratch card)
	KindPlain Kind = "plain"
	// KindPerishable products expire and are shipped by weight
	KindPerishable Kind = "perishable"
	// KindShippable products are shipped by weight and never expire
	KindShippable Kind = "shippable"
)

// Product represents an item available for purchase
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Kind        Kind            `json:"kind"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
	WeightGrams int             `json:"weightGrams,omitempty"`
}

// NewProduct creates a plain product with no expiry and no shipping weight
func NewProduct(id, name string, price decimal.Decimal, quantity int) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Kind:     KindPlain,
	}
}

// NewPerishableProduct creates a product that expires at expiresAt and ships by weight
func NewPerishableProduct(id, name string, price decimal.Decimal, quantity int, expiresAt time.Time, weightGrams int) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Kind:        KindPerishable,
		ExpiresAt:   &expiresAt,
		WeightGrams: weightGrams,
	}
}

// NewShippableProduct creates a non-expiring product that ships by weight
func NewShippableProduct(id, name string, price decimal.Decimal, quantity int, weightGrams int) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Kind:        KindShippable,
		WeightGrams: weightGrams,
	}
}

// IsExpired reports whether the product has passed its expiry date at now
func (p *Product) IsExpired(now time.Time) bool {
	if p.Kind != KindPerishable || p.ExpiresAt == nil {
		return false
	}
	return now.After(*p.ExpiresAt)
}

// IsShippable reports whether the product must be included in a shipment
func (p *Product) IsShippable() bool {
	return p.Kind == KindPerishable || p.Kind == KindShippable
}

// Weight returns the unit weight in grams, zero for products that are not shipped
func (p *Product) Weight() int {
	if !p.IsShippable() {
		return 0
	}
	return p.WeightGrams
}

// ReduceQuantity removes qty units from stock.
// Stock is left untouched when qty is not positive or exceeds what is on hand.
func (p *Product) ReduceQuantity(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d of %s", ErrInvalidQuantity, qty, p.Name)
	}
	if qty > p.Quantity {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrOutOfStock, p.Name, p.Quantity, qty)
	}
	p.Quantity -= qty
	return nil
}

// Validate checks the product is well formed
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidItem)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required for product %s", ErrInvalidItem, p.ID)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price of %s must be positive", ErrInvalidItem, p.Name)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity of %s must not be negative", ErrInvalidItem, p.Name)
	}
	if p.WeightGrams < 0 {
		return fmt.Errorf("%w: weight of %s must not be negative", ErrInvalidItem, p.Name)
	}

	switch p.Kind {
	case KindPlain, KindShippable:
	case KindPerishable:
		if p.ExpiresAt == nil {
			return fmt.Errorf("%w: perishable %s needs an expiry date", ErrInvalidItem, p.Name)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q for %s", ErrInvalidItem, p.Kind, p.Name)
	}

	return nil
}
