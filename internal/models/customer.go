package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid payment amount")
)

// Customer represents a shopper with a prepaid balance
type Customer struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// NewCustomer creates a customer with the given opening balance
func NewCustomer(id, name string, balance decimal.Decimal) *Customer {
	return &Customer{
		ID:      id,
		Name:    name,
		Balance: balance,
	}
}

// Pay debits amount from the balance, failing without change if funds are short.
// A negative amount is rejected; the balance never grows.
func (c *Customer) Pay(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(c.Balance) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, c.Name, c.Balance, amount)
	}
	c.Balance = c.Balance.Sub(amount)
	return nil
}

// Validate checks the customer is well formed
func (c *Customer) Validate() error {
	if c.ID == "" {
		return errors.New("customer id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("customer %s: name is required", c.ID)
	}
	if c.Balance.IsNegative() {
		return fmt.Errorf("customer %s: balance must not be negative", c.ID)
	}
	return nil
}
