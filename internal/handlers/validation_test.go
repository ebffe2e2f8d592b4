package handlers

import (
	"testing"

	"productapi/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProductValidator(t *testing.T) {
	v := NewProductValidator()

	tests := []struct {
		name    string
		product models.Product
		want    []string
	}{
		{
			name:    "valid",
			product: models.Product{Name: "Laptop", Description: "High performance laptop", Price: 0.01, Quantity: 1},
		},
		{
			name:    "everything wrong",
			product: models.Product{Name: "", Description: "", Price: -10.0, Quantity: -5},
			want: []string{
				"name: must not be blank",
				"description: must not be blank",
				"price: must be greater than 0",
				"quantity: must be greater than 0",
			},
		},
		{
			name:    "whitespace only is blank",
			product: models.Product{Name: "  \t", Description: "\n", Price: 1, Quantity: 1},
			want:    []string{"name: must not be blank", "description: must not be blank"},
		},
		{
			name:    "zero price and quantity",
			product: models.Product{Name: "Mouse", Description: "Wireless", Price: 0, Quantity: 0},
			want:    []string{"price: must be greater than 0", "quantity: must be greater than 0"},
		},
		{
			name:    "only quantity",
			product: models.Product{Name: "Mouse", Description: "Wireless", Price: 25, Quantity: -1},
			want:    []string{"quantity: must be greater than 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(&tt.product))
		})
	}
}
