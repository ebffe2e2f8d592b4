package models

import "time"

// ProductEventType names the kind of change a ProductEvent describes.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is emitted after a write to the catalog has been committed.
type ProductEvent struct {
	EventID    string           `json:"event_id"`
	Type       ProductEventType `json:"type"`
	ProductID  int64            `json:"product_id"`
	Product    *Product         `json:"product"` // nil for deletions
	OccurredAt time.Time        `json:"occurred_at"`
}
