// Package product provides the Product catalog and its sellable variants.
// A Product is a general item ("Basmati Rice"); a ProductVariant is a
// specific pack size with its own price, unit and stock counter.
package product

import (
	"context"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

// Unit defines the unit of measure for a variant.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitPiece  Unit = "piece"
	UnitLitre  Unit = "litre"
	UnitPacket Unit = "packet"
)

// Product represents a general product category.
type Product struct {
	ID       id.ID   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Category *string `db:"category" json:"category,omitempty"`

	// Variants is loaded on demand, not stored on the product row.
	Variants []Variant `db:"-" json:"variants,omitempty"`
}

// NewProduct creates a new Product with generated ID.
func NewProduct(name string) *Product {
	return &Product{
		ID:   id.New(),
		Name: name,
	}
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Variant represents a specific sellable version of a product.
type Variant struct {
	ID        id.ID  `db:"id" json:"id"`
	ProductID id.ID  `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"name"`

	// Price is the current selling price (2 decimal places).
	Price types.Money `db:"price" json:"price"`

	Unit Unit `db:"unit" json:"unit"`

	// CurrentStock is the running on-hand quantity. Only the stock
	// ledger writes this field; everything else treats it as read-only.
	CurrentStock types.Quantity `db:"current_stock" json:"currentStock"`
}

// NewVariant creates a new Variant with generated ID and zero stock.
func NewVariant(productID id.ID, name string, price types.Money, unit Unit) *Variant {
	return &Variant{
		ID:        id.New(),
		ProductID: productID,
		Name:      name,
		Price:     price,
		Unit:      unit,
	}
}

// Validate checks variant invariants.
func (v *Variant) Validate(ctx context.Context) error {
	if id.IsNil(v.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if v.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if v.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}
	if !isValidUnit(v.Unit) {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(v.Unit))
	}
	return nil
}

func isValidUnit(u Unit) bool {
	switch u {
	case UnitKg, UnitPiece, UnitLitre, UnitPacket:
		return true
	}
	return false
}
