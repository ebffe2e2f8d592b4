package handlers

import (
	"fmt"
	"strings"

	"productapi/internal/models"

	"github.com/go-playground/validator/v10"
)

// fieldRule checks one field of a product. The extracted value is validated
// against tag; message is reported when the check fails.
type fieldRule struct {
	field   string
	value   func(p *models.Product) interface{}
	tag     string
	message string
}

const (
	msgNotBlank    = "must not be blank"
	msgGreaterThan = "must be greater than 0"
)

// productRules are listed in field declaration order, which is also the order
// of reported violations.
var productRules = []fieldRule{
	{field: "name", value: func(p *models.Product) interface{} { return strings.TrimSpace(p.Name) }, tag: "required", message: msgNotBlank},
	{field: "description", value: func(p *models.Product) interface{} { return strings.TrimSpace(p.Description) }, tag: "required", message: msgNotBlank},
	{field: "price", value: func(p *models.Product) interface{} { return p.Price }, tag: "gt=0", message: msgGreaterThan},
	{field: "quantity", value: func(p *models.Product) interface{} { return p.Quantity }, tag: "gt=0", message: msgGreaterThan},
}

// ProductValidator applies productRules to write request bodies.
type ProductValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates a new ProductValidator.
func NewProductValidator() *ProductValidator {
	return &ProductValidator{validate: validator.New()}
}

// Validate evaluates every rule and returns one "<field>: <message>" entry per
// violation. A nil slice means the product is valid.
func (v *ProductValidator) Validate(p *models.Product) []string {
	var violations []string
	for _, rule := range productRules {
		if err := v.validate.Var(rule.value(p), rule.tag); err != nil {
			violations = append(violations, fmt.Sprintf("%s: %s", rule.field, rule.message))
		}
	}
	return violations
}
