package catalog

import (
	"context"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

type productSaver interface {
	Save(ctx context.Context, product *models.Product) error
}

type customerSaver interface {
	Save(ctx context.Context, customer *models.Customer) error
}

// Apply stores every seeded product and customer
func Apply(ctx context.Context, seed *Seed, products productSaver, customers customerSaver) error {
	for _, p := range seed.Products {
		if err := products.Save(ctx, p); err != nil {
			return fmt.Errorf("failed to save product %s: %w", p.ID, err)
		}
	}
	for _, c := range seed.Customers {
		if err := customers.Save(ctx, c); err != nil {
			return fmt.Errorf("failed to save customer %s: %w", c.ID, err)
		}
	}
	return nil
}
