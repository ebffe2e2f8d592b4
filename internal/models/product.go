package models

// Product represents a product in the catalog.
// The ID is assigned by storage on creation and never changes afterwards.
type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"type:varchar(255);not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
}

// TableName pins the table name regardless of the naming strategy in use.
func (Product) TableName() string {
	return "products"
}
