package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductLookup resolves a live product inside an Update call
type ProductLookup func(id string) (*models.Product, error)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, fn func(lookup ProductLookup) error) error
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// It is the single writer for stock: reads return copies and mutations
// happen on live products inside Update while the write lock is held.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

// NewInMemoryProductRepository creates a new in-memory product repository with seed data
func NewInMemoryProductRepository() *InMemoryProductRepository {
	expiry := time.Now().AddDate(0, 1, 0)

	products := []*models.Product{
		models.NewPerishableProduct("1", "Cheese", decimal.NewFromInt(100), 10, expiry, 200),
		models.NewPerishableProduct("2", "Biscuits", decimal.NewFromInt(150), 5, expiry, 700),
		models.NewShippableProduct("3", "TV", decimal.NewFromInt(5000), 3, 8000),
		models.NewShippableProduct("4", "Mobile", decimal.NewFromInt(300), 8, 180),
		models.NewProduct("5", "Scratch Card", decimal.NewFromInt(50), 100),
	}

	return NewInMemoryProductRepositoryWith(products...)
}

// NewInMemoryProductRepositoryWith creates a repository holding exactly the given products
func NewInMemoryProductRepositoryWith(products ...*models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make(map[string]*models.Product, len(products)),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

// GetAll returns a snapshot of all products ordered by ID
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, *product)
	}

	sort.Slice(products, func(i, j int) bool {
		return lessID(products[i].ID, products[j].ID)
	})
	return products, nil
}

// GetByID returns a snapshot of a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	snapshot := *product
	return &snapshot, nil
}

// Save inserts or replaces a product
func (r *InMemoryProductRepository) Save(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *product
	r.products[product.ID] = &stored
	return nil
}

// Update runs fn with exclusive access to the live products
func (r *InMemoryProductRepository) Update(ctx context.Context, fn func(lookup ProductLookup) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return fn(func(id string) (*models.Product, error) {
		product, exists := r.products[id]
		if !exists {
			return nil, ErrProductNotFound
		}
		return product, nil
	})
}

// lessID orders numeric IDs numerically and everything else lexically
func lessID(a, b string) bool {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
