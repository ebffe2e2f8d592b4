package services

import "productapi/internal/models"

// ProductResult is the outcome of a lookup: either a found product or nothing.
// The zero value is NotFound.
type ProductResult struct {
	product models.Product
	found   bool
}

// Found wraps a product that exists in storage.
func Found(product models.Product) ProductResult {
	return ProductResult{product: product, found: true}
}

// NotFound signals that no product matched.
func NotFound() ProductResult {
	return ProductResult{}
}

// Get returns the product and whether it was found.
func (r ProductResult) Get() (models.Product, bool) {
	return r.product, r.found
}

// IsFound reports whether the result holds a product.
func (r ProductResult) IsFound() bool {
	return r.found
}
