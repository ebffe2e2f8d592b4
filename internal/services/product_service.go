package services

import (
	"context"
	"log/slog"
	"time"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher delivers product change events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	tx        repositories.Transactor
	publisher EventPublisher
}

// Option configures optional ProductService collaborators.
type Option func(*ProductService)

// WithEventPublisher publishes a ProductEvent after each committed write.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *ProductService) {
		s.publisher = p
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, tx repositories.Transactor, opts ...Option) *ProductService {
	s := &ProductService{
		repo: repo,
		tx:   tx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	readWrite = repositories.TxOptions{}
	readOnly  = repositories.TxOptions{ReadOnly: true}
)

// AddProduct stores a new product and returns it with its generated ID.
// Any ID already set on product is discarded.
func (s *ProductService) AddProduct(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = 0
	err := s.tx.WithinTransaction(ctx, readWrite, func(ctx context.Context) error {
		return s.repo.Create(ctx, &product)
	})
	if err != nil {
		return models.Product{}, err
	}
	s.publish(models.ProductCreated, product.ID, &product)
	return product, nil
}

// GetAllProducts retrieves all products in storage order.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.tx.WithinTransaction(ctx, readOnly, func(ctx context.Context) error {
		var err error
		products, err = s.repo.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (ProductResult, error) {
	result := NotFound()
	err := s.tx.WithinTransaction(ctx, readOnly, func(ctx context.Context) error {
		product, ok, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if ok {
			result = Found(product)
		}
		return nil
	})
	if err != nil {
		return NotFound(), err
	}
	return result, nil
}

// UpdateProduct replaces every field of the product with the given ID.
// The ID carried by updated is ignored. NotFound is returned when id does not exist.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, updated models.Product) (ProductResult, error) {
	result := NotFound()
	err := s.tx.WithinTransaction(ctx, readWrite, func(ctx context.Context) error {
		_, ok, err := s.repo.FindByID(ctx, id)
		if err != nil || !ok {
			return err
		}
		updated.ID = id
		if err := s.repo.Save(ctx, &updated); err != nil {
			return err
		}
		result = Found(updated)
		return nil
	})
	if err != nil {
		return NotFound(), err
	}
	if product, ok := result.Get(); ok {
		s.publish(models.ProductUpdated, id, &product)
	}
	return result, nil
}

// DeleteProduct deletes a product by its ID. Unknown IDs are ignored.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.tx.WithinTransaction(ctx, readWrite, func(ctx context.Context) error {
		return s.repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return err
	}
	s.publish(models.ProductDeleted, id, nil)
	return nil
}

// publish never fails the caller; the write has already been committed.
func (s *ProductService) publish(eventType models.ProductEventType, id int64, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		slog.Warn("failed to publish product event",
			slog.String("type", string(eventType)),
			slog.Int64("product_id", id),
			slog.Any("error", err),
		)
		return
	}
	slog.Debug("published product event",
		slog.String("type", string(eventType)),
		slog.String("event_id", event.EventID),
		slog.Int64("product_id", id),
	)
}
