package repositories

import (
	"context"

	"productapi/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	// FindByID reports false when no product has the given ID. Absence is not an error.
	FindByID(ctx context.Context, id int64) (models.Product, bool, error)
	// Save overwrites every field of the stored product with product.ID.
	Save(ctx context.Context, product *models.Product) error
	// DeleteByID is a no-op for unknown IDs.
	DeleteByID(ctx context.Context, id int64) error
}

// TxOptions controls how a unit of work is opened.
type TxOptions struct {
	ReadOnly bool
}

// Transactor runs a function inside a single unit of work. Repository calls made
// with the context passed to fn join that unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error
}
