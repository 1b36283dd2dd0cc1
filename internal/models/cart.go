package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CartItem pairs a product with the quantity requested.
// The cart does not own the product, checkout reduces its stock in place.
type CartItem struct {
	Product  *Product
	Quantity int
}

// TotalPrice returns price x quantity
func (i CartItem) TotalPrice() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalWeight returns the product weight x quantity in grams
func (i CartItem) TotalWeight() int {
	return i.Product.Weight() * i.Quantity
}

// Cart holds items in the order they were added
type Cart struct {
	items []CartItem
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Add appends product with quantity to the cart.
// The stock check is advisory; nothing is reserved until checkout.
func (c *Cart) Add(product *Product, quantity int) error {
	if product == nil {
		return ErrInvalidItem
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > product.Quantity {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, product.Name, product.Quantity, quantity)
	}

	c.items = append(c.items, CartItem{Product: product, Quantity: quantity})
	return nil
}

// Items returns a copy of the cart items
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// IsEmpty reports whether nothing has been added
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Subtotal sums the total price of every item
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.TotalPrice())
	}
	return subtotal
}

// ShippableItems returns the items whose product ships, in cart order
func (c *Cart) ShippableItems() []CartItem {
	var shippable []CartItem
	for _, item := range c.items {
		if item.Product.IsShippable() {
			shippable = append(shippable, item)
		}
	}
	return shippable
}

// TotalWeight sums the weight of the shippable items in grams
func (c *Cart) TotalWeight() int {
	total := 0
	for _, item := range c.ShippableItems() {
		total += item.TotalWeight()
	}
	return total
}
