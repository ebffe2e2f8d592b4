package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"productapi/internal/models"

	"gorm.io/gorm"
)

type txKey struct{}

// GORMTransactor opens GORM transactions and stores them in the context.
type GORMTransactor struct {
	db *gorm.DB
}

// NewGORMTransactor creates a new instance of GORMTransactor.
func NewGORMTransactor(db *gorm.DB) *GORMTransactor {
	return &GORMTransactor{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (t *GORMTransactor) WithinTransaction(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		// Already inside a unit of work, join it.
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, &sql.TxOptions{ReadOnly: opts.ReadOnly})
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// conn returns the transaction bound to ctx, or the base handle.
func (r *GORMProductRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Create inserts a new product. Storage assigns the ID.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.conn(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindAll retrieves all products ordered by ID.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.conn(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(ctx context.Context, id int64) (models.Product, bool, error) {
	var product models.Product
	if err := r.conn(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, false, nil
		}
		return models.Product{}, false, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return product, true, nil
}

// Save updates all fields of an existing product, including zero values.
func (r *GORMProductRepository) Save(ctx context.Context, product *models.Product) error {
	if err := r.conn(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product %d: %w", product.ID, err)
	}
	return nil
}

// DeleteByID deletes a product by its ID. Deleting an unknown ID affects no rows
// and is not reported.
func (r *GORMProductRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.conn(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
