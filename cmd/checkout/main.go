// Command checkout runs a single checkout against the in-memory store and
// prints the shipment notice and receipt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/shipping"
	"github.com/Lixing-Zhang/kart-challenge/checkout/pkg/logger"
)

// defaultItems is 2x cheese, 1x biscuits and 1x scratch card from the built-in catalog
var defaultItems = []string{"1=2", "2=1", "5=1"}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "checkout failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	catalogFiles := flags.StringSlice("catalog", nil, "YAML seed files to load over the built-in catalog")
	customerID := flags.String("customer", "1", "ID of the paying customer")
	items := flags.StringArray("item", nil, "product ID and quantity, e.g. --item 1=2 (repeatable, kept in order)")
	logLevel := flags.String("log-level", "error", "log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return err
	}

	log := logger.NewWithWriter(stderr, *logLevel)
	ctx := context.Background()

	products := repository.NewInMemoryProductRepository()
	customers := repository.NewInMemoryCustomerRepository()

	if len(*catalogFiles) > 0 {
		seed, err := catalog.NewLoader().LoadFromFiles(ctx, *catalogFiles)
		if err != nil {
			return err
		}
		if err := catalog.Apply(ctx, seed, products, customers); err != nil {
			return err
		}
	}

	if len(*items) == 0 {
		*items = defaultItems
	}

	order, err := orderItems(*items)
	if err != nil {
		return err
	}

	checkout := service.NewCheckoutService(products, customers, shipping.NewService(), service.CheckoutConfig{
		Output: stdout,
	}, log)

	_, err = checkout.PlaceOrder(ctx, models.OrderRequest{
		CustomerID: *customerID,
		Items:      order,
	})
	return err
}

// orderItems parses id=qty pairs in the order they were given.
// The same product may appear more than once; each pair becomes its own cart line.
func orderItems(items []string) ([]models.OrderItem, error) {
	order := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		id, qty, ok := strings.Cut(item, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --item %q: want id=qty", item)
		}

		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("invalid --item %q: %w", item, err)
		}
		order = append(order, models.OrderItem{ProductID: id, Quantity: n})
	}
	return order, nil
}
