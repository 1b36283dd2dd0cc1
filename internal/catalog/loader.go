// Package catalog loads product and customer seed data from YAML files.
package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

// Seed is the merged content of one or more seed files
type Seed struct {
	Products  []*models.Product
	Customers []*models.Customer
}

// seedFile mirrors the YAML layout of a seed file
type seedFile struct {
	Products  []productEntry  `yaml:"products"`
	Customers []customerEntry `yaml:"customers"`
}

type productEntry struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Price       string     `yaml:"price"`
	Quantity    int        `yaml:"quantity"`
	Kind        string     `yaml:"kind"`
	ExpiresAt   *time.Time `yaml:"expires_at"`
	WeightGrams int        `yaml:"weight_grams"`
}

type customerEntry struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Balance string `yaml:"balance"`
}

// fileLoadResult holds the result of loading a single file
type fileLoadResult struct {
	index int
	seed  *Seed
	err   error
}

// Loader reads seed files
type Loader struct{}

// NewLoader creates a new seed loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFiles loads seed files concurrently and merges them in path order.
// A later file replaces products and customers with the same ID.
// Returns error if any file fails to load.
func (l *Loader) LoadFromFiles(ctx context.Context, paths []string) (*Seed, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no file paths provided")
	}

	resultChan := make(chan fileLoadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, filePath string) {
			defer wg.Done()

			seed, err := l.loadFromFile(ctx, filePath)
			resultChan <- fileLoadResult{
				index: index,
				seed:  seed,
				err:   err,
			}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]fileLoadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", paths[i], result.err)
		}
	}

	seeds := make([]*Seed, len(results))
	for i, result := range results {
		seeds[i] = result.seed
	}
	return merge(seeds), nil
}

// loadFromFile opens a seed file, decompressing it when the name ends in .gz
func (l *Loader) loadFromFile(ctx context.Context, path string) (*Seed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	return Parse(r)
}

// Parse decodes and validates a single YAML seed document
func Parse(r io.Reader) (*Seed, error) {
	var file seedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return &Seed{}, nil
		}
		return nil, fmt.Errorf("error decoding seed: %w", err)
	}

	seed := &Seed{
		Products:  make([]*models.Product, 0, len(file.Products)),
		Customers: make([]*models.Customer, 0, len(file.Customers)),
	}

	for _, entry := range file.Products {
		product, err := entry.toProduct()
		if err != nil {
			return nil, err
		}
		seed.Products = append(seed.Products, product)
	}

	for _, entry := range file.Customers {
		customer, err := entry.toCustomer()
		if err != nil {
			return nil, err
		}
		seed.Customers = append(seed.Customers, customer)
	}

	return seed, nil
}

func (e productEntry) toProduct() (*models.Product, error) {
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		return nil, fmt.Errorf("product %s: invalid price %q: %w", e.ID, e.Price, err)
	}

	product := &models.Product{
		ID:          e.ID,
		Name:        e.Name,
		Price:       price,
		Quantity:    e.Quantity,
		Kind:        models.Kind(e.Kind),
		WeightGrams: e.WeightGrams,
	}
	if product.Kind == "" {
		product.Kind = models.KindPlain
	}
	if product.Kind == models.KindPerishable {
		product.ExpiresAt = e.ExpiresAt
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

func (e customerEntry) toCustomer() (*models.Customer, error) {
	balance, err := decimal.NewFromString(e.Balance)
	if err != nil {
		return nil, fmt.Errorf("customer %s: invalid balance %q: %w", e.ID, e.Balance, err)
	}

	customer := models.NewCustomer(e.ID, e.Name, balance)
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	return customer, nil
}

// merge folds seeds left to right, keeping first-seen order of IDs
func merge(seeds []*Seed) *Seed {
	merged := &Seed{}
	productIdx := make(map[string]int)
	customerIdx := make(map[string]int)

	for _, seed := range seeds {
		for _, p := range seed.Products {
			if i, ok := productIdx[p.ID]; ok {
				merged.Products[i] = p
				continue
			}
			productIdx[p.ID] = len(merged.Products)
			merged.Products = append(merged.Products, p)
		}
		for _, c := range seed.Customers {
			if i, ok := customerIdx[c.ID]; ok {
				merged.Customers[i] = c
				continue
			}
			customerIdx[c.ID] = len(merged.Customers)
			merged.Customers = append(merged.Customers, c)
		}
	}

	return merged
}
