package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/report"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/repository"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrExpiredProduct = errors.New("product is expired")
)

// DefaultShippingFee is charged once per checkout when anything ships
var DefaultShippingFee = decimal.NewFromInt(30)

// Shipper describes a shipment for shippable cart items
type Shipper interface {
	Ship(items []models.CartItem) *models.Shipment
}

// CheckoutConfig tunes a CheckoutService. Zero values fall back to defaults.
type CheckoutConfig struct {
	ShippingFee *decimal.Decimal
	// Output receives the shipment notice and receipt text; nil discards them
	Output io.Writer
	Clock  func() time.Time
}

// CheckoutService validates carts, charges customers and reports receipts
type CheckoutService struct {
	products    repository.ProductRepository
	customers   repository.CustomerRepository
	shipper     Shipper
	shippingFee decimal.Decimal
	out         io.Writer
	now         func() time.Time
	log         *slog.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	shipper Shipper,
	cfg CheckoutConfig,
	log *slog.Logger,
) *CheckoutService {
	s := &CheckoutService{
		products:    products,
		customers:   customers,
		shipper:     shipper,
		shippingFee: DefaultShippingFee,
		out:         cfg.Output,
		now:         cfg.Clock,
		log:         log,
	}
	if cfg.ShippingFee != nil {
		s.shippingFee = *cfg.ShippingFee
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Checkout settles cart for customer.
//
// Steps run in a fixed order and any failure aborts the rest: the cart must
// not be empty, every item is checked for expiry and then has its stock
// reduced, the customer pays subtotal plus shipping, shippable items are
// shipped and a receipt is produced. Stock already reduced is not restored
// when a later step fails.
func (s *CheckoutService) Checkout(ctx context.Context, customer *models.Customer, cart *models.Cart) (*models.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := s.now()
	items := cart.Items()

	for _, item := range items {
		if item.Product.IsExpired(now) {
			return nil, fmt.Errorf("%w: %s", ErrExpiredProduct, item.Product.Name)
		}
		if err := item.Product.ReduceQuantity(item.Quantity); err != nil {
			return nil, err
		}
		s.log.Debug("stock reduced",
			"product_id", item.Product.ID,
			"quantity", item.Quantity,
			"remaining", item.Product.Quantity,
		)
	}

	subtotal := cart.Subtotal()
	shippingFee := decimal.Zero
	if cart.TotalWeight() > 0 {
		shippingFee = s.shippingFee
	}
	amount := subtotal.Add(shippingFee)

	if err := customer.Pay(amount); err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		ID:              generateReceiptID(),
		CustomerID:      customer.ID,
		Lines:           make([]models.ReceiptLine, 0, len(items)),
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Amount:          amount,
		CustomerBalance: customer.Balance,
		CreatedAt:       now.UTC(),
	}

	if shippable := cart.ShippableItems(); len(shippable) > 0 {
		receipt.Shipment = s.shipper.Ship(shippable)
	}

	for _, item := range items {
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			LineTotal: item.TotalPrice(),
		})
	}

	// Payment has been taken, so a broken sink is only logged
	if err := report.Write(s.out, receipt); err != nil {
		s.log.Error("failed to write receipt", "receipt_id", receipt.ID, "error", err)
	}

	s.log.Info("checkout completed",
		"receipt_id", receipt.ID,
		"customer_id", customer.ID,
		"items_count", len(receipt.Lines),
		"amount", amount.String(),
	)

	return receipt, nil
}

// PlaceOrder resolves the customer and products of req, builds a cart and checks it out.
// Stock and balances are held exclusively for the whole operation.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Receipt, error) {
	var receipt *models.Receipt

	err := s.products.Update(ctx, func(lookup repository.ProductLookup) error {
		return s.customers.Update(ctx, req.CustomerID, func(customer *models.Customer) error {
			cart := models.NewCart()
			for _, item := range req.Items {
				product, err := lookup(item.ProductID)
				if err != nil {
					return fmt.Errorf("%w: %s", err, item.ProductID)
				}
				if err := cart.Add(product, item.Quantity); err != nil {
					return err
				}
			}

			var err error
			receipt, err = s.Checkout(ctx, customer, cart)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// generateReceiptID generates a unique receipt ID using UUID
func generateReceiptID() string {
	return uuid.New().String()
}
