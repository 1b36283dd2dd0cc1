package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/shipping"
	"github.com/Lixing-Zhang/kart-challenge/checkout/pkg/logger"
)

type checkoutTestContext struct {
	now      time.Time
	products map[string]*models.Product
	customer *models.Customer
	cart     *models.Cart
	out      strings.Builder
	receipt  *models.Receipt
	err      error
	addErr   error
}

func (c *checkoutTestContext) reset() {
	c.now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	c.products = make(map[string]*models.Product)
	c.customer = nil
	c.cart = models.NewCart()
	c.out.Reset()
	c.receipt = nil
	c.err = nil
	c.addErr = nil
}

func (c *checkoutTestContext) theCatalog(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.Value
		}

		price, err := decimal.NewFromString(cells[2])
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(cells[3])
		if err != nil {
			return err
		}
		weight := 0
		if cells[6] != "" {
			if weight, err = strconv.Atoi(cells[6]); err != nil {
				return err
			}
		}

		var product *models.Product
		switch models.Kind(cells[4]) {
		case models.KindPerishable:
			days, err := strconv.Atoi(cells[5])
			if err != nil {
				return err
			}
			product = models.NewPerishableProduct(cells[0], cells[1], price, quantity, c.now.AddDate(0, 0, days), weight)
		case models.KindShippable:
			product = models.NewShippableProduct(cells[0], cells[1], price, quantity, weight)
		case models.KindPlain:
			product = models.NewProduct(cells[0], cells[1], price, quantity)
		default:
			return fmt.Errorf("unknown kind %q", cells[4])
		}
		c.products[product.Name] = product
	}
	return nil
}

func (c *checkoutTestContext) aCustomerWithBalance(name string, balance int) error {
	c.customer = models.NewCustomer(strings.ToLower(name), name, decimal.NewFromInt(int64(balance)))
	return nil
}

func (c *checkoutTestContext) product(name string) (*models.Product, error) {
	p, ok := c.products[name]
	if !ok {
		return nil, fmt.Errorf("no product named %q", name)
	}
	return p, nil
}

func (c *checkoutTestContext) theCartContains(qty int, name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	return c.cart.Add(p, qty)
}

func (c *checkoutTestContext) iAddToTheCart(qty int, name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	c.addErr = c.cart.Add(p, qty)
	return nil
}

func (c *checkoutTestContext) daysHavePassed(days int) error {
	c.now = c.now.AddDate(0, 0, days)
	return nil
}

func (c *checkoutTestContext) areSoldElsewhere(qty int, name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	return p.ReduceQuantity(qty)
}

func (c *checkoutTestContext) theCustomerChecksOut() error {
	svc := NewCheckoutService(
		repository.NewInMemoryProductRepositoryWith(),
		repository.NewInMemoryCustomerRepositoryWith(),
		shipping.NewService(),
		CheckoutConfig{
			Output: &c.out,
			Clock:  func() time.Time { return c.now },
		},
		logger.New("error"),
	)
	c.receipt, c.err = svc.Checkout(context.Background(), c.customer, c.cart)
	return nil
}

func (c *checkoutTestContext) theCheckoutSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success but got error: %v", c.err)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected checkout to fail")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *checkoutTestContext) addingFailsWith(msg string) error {
	if c.addErr == nil {
		return errors.New("expected add to fail")
	}
	if !strings.Contains(c.addErr.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.addErr.Error())
	}
	return nil
}

func expectAmount(label string, got decimal.Decimal, want int) error {
	if !got.Equal(decimal.NewFromInt(int64(want))) {
		return fmt.Errorf("expected %s %d, got %s", label, want, got)
	}
	return nil
}

func (c *checkoutTestContext) theSubtotalIs(want int) error {
	return expectAmount("subtotal", c.receipt.Subtotal, want)
}

func (c *checkoutTestContext) theShippingFeeIs(want int) error {
	return expectAmount("shipping fee", c.receipt.ShippingFee, want)
}

func (c *checkoutTestContext) theAmountPaidIs(want int) error {
	return expectAmount("amount", c.receipt.Amount, want)
}

func (c *checkoutTestContext) theCustomerBalanceIs(want int) error {
	return expectAmount("balance", c.customer.Balance, want)
}

func (c *checkoutTestContext) aShipmentIsReported(kg float64) error {
	if c.receipt.Shipment == nil {
		return errors.New("expected a shipment")
	}
	if c.receipt.Shipment.TotalWeightKg != kg {
		return fmt.Errorf("expected %.1fkg, got %.1fkg", kg, c.receipt.Shipment.TotalWeightKg)
	}
	if !strings.Contains(c.out.String(), fmt.Sprintf("Total package weight %.1fkg", kg)) {
		return fmt.Errorf("shipment notice missing from output %q", c.out.String())
	}
	return nil
}

func (c *checkoutTestContext) noShipmentIsReported() error {
	if c.receipt.Shipment != nil {
		return errors.New("expected no shipment")
	}
	if strings.Contains(c.out.String(), "Shipment notice") {
		return errors.New("shipment notice was printed")
	}
	return nil
}

func (c *checkoutTestContext) nothingIsPrinted() error {
	if c.out.Len() != 0 {
		return fmt.Errorf("expected no output, got %q", c.out.String())
	}
	return nil
}

func (c *checkoutTestContext) hasInStock(name string, want int) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	if p.Quantity != want {
		return fmt.Errorf("expected %s to have %d in stock, got %d", name, want, p.Quantity)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog:$`, tc.theCatalog)
	ctx.Step(`^a customer "([^"]*)" with balance (\d+)$`, tc.aCustomerWithBalance)
	ctx.Step(`^the cart contains (\d+) of "([^"]*)"$`, tc.theCartContains)
	ctx.Step(`^(\d+) days have passed$`, tc.daysHavePassed)
	ctx.Step(`^(\d+) of "([^"]*)" are sold elsewhere$`, tc.areSoldElsewhere)

	// When steps
	ctx.Step(`^the customer checks out$`, tc.theCustomerChecksOut)
	ctx.Step(`^I add (\d+) of "([^"]*)" to the cart$`, tc.iAddToTheCart)

	// Then steps
	ctx.Step(`^the checkout succeeds$`, tc.theCheckoutSucceeds)
	ctx.Step(`^the checkout fails with "([^"]*)"$`, tc.theCheckoutFailsWith)
	ctx.Step(`^adding fails with "([^"]*)"$`, tc.addingFailsWith)
	ctx.Step(`^the subtotal is (\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the shipping fee is (\d+)$`, tc.theShippingFeeIs)
	ctx.Step(`^the amount paid is (\d+)$`, tc.theAmountPaidIs)
	ctx.Step(`^the customer balance is (\d+)$`, tc.theCustomerBalanceIs)
	ctx.Step(`^a shipment of ([\d.]+)kg is reported$`, tc.aShipmentIsReported)
	ctx.Step(`^no shipment is reported$`, tc.noShipmentIsReported)
	ctx.Step(`^nothing is printed$`, tc.nothingIsPrinted)
	ctx.Step(`^"([^"]*)" has (\d+) in stock$`, tc.hasInStock)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
