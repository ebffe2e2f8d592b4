package repositories

import (
	"context"
	"sort"
	"sync"

	"productapi/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[int64]models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[int64]models.Product),
	}
}

// Create adds a new product with the next sequential ID.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = *product
	return nil
}

// FindAll returns all products ordered by ID.
func (r *MockProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// FindByID returns a product by its ID.
func (r *MockProductRepository) FindByID(_ context.Context, id int64) (models.Product, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	return product, ok, nil
}

// Save stores the product under its ID, replacing any previous value.
func (r *MockProductRepository) Save(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = *product
	if product.ID > r.nextID {
		r.nextID = product.ID
	}
	return nil
}

// DeleteByID removes a product by its ID.
func (r *MockProductRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

// NoopTransactor runs functions directly, without a unit of work.
// It pairs with MockProductRepository.
type NoopTransactor struct{}

// WithinTransaction calls fn with ctx.
func (NoopTransactor) WithinTransaction(ctx context.Context, _ TxOptions, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
