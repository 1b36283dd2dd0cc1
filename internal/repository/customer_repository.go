package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Save(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, id string, fn func(customer *models.Customer) error) error
}

// InMemoryCustomerRepository implements CustomerRepository with in-memory storage
type InMemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
}

// NewInMemoryCustomerRepository creates a new in-memory customer repository with seed data
func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return NewInMemoryCustomerRepositoryWith(
		models.NewCustomer("1", "Alice", decimal.NewFromInt(1000)),
		models.NewCustomer("2", "Bob", decimal.NewFromInt(100)),
	)
}

// NewInMemoryCustomerRepositoryWith creates a repository holding exactly the given customers
func NewInMemoryCustomerRepositoryWith(customers ...*models.Customer) *InMemoryCustomerRepository {
	r := &InMemoryCustomerRepository{
		customers: make(map[string]*models.Customer, len(customers)),
	}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

// GetByID returns a snapshot of a customer by ID
func (r *InMemoryCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[id]
	if !exists {
		return nil, ErrCustomerNotFound
	}
	snapshot := *customer
	return &snapshot, nil
}

// Save inserts or replaces a customer
func (r *InMemoryCustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *customer
	r.customers[customer.ID] = &stored
	return nil
}

// Update runs fn with exclusive access to the live customer
func (r *InMemoryCustomerRepository) Update(ctx context.Context, id string, fn func(customer *models.Customer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	customer, exists := r.customers[id]
	if !exists {
		return ErrCustomerNotFound
	}
	return fn(customer)
}
