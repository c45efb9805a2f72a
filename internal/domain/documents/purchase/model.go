// Package purchase provides the Purchase document: a stock replenishment
// bought from a supplier.
package purchase

import (
	"context"
	"time"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

// Purchase represents a single purchase of a product variant.
type Purchase struct {
	ID id.ID `db:"id" json:"id"`

	// SupplierID is nullable: deleting a supplier keeps the purchase
	// row with the reference nulled out.
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	VariantID     id.ID          `db:"variant_id" json:"variantId"`
	Quantity      types.Quantity `db:"quantity" json:"quantity"`
	PurchasePrice types.Money    `db:"purchase_price" json:"purchasePrice"`

	// PurchaseDate is stamped at creation and never updated.
	PurchaseDate time.Time `db:"purchase_date" json:"purchaseDate"`

	// Display names annotated by list/get queries.
	SupplierName *string `db:"supplier_name" json:"supplierName,omitempty"`
	VariantName  *string `db:"variant_name" json:"variantName,omitempty"`
}

// NewPurchase creates a new Purchase stamped with the current time.
func NewPurchase(supplierID *id.ID, variantID id.ID, qty types.Quantity, price types.Money) *Purchase {
	return &Purchase{
		ID:            id.New(),
		SupplierID:    supplierID,
		VariantID:     variantID,
		Quantity:      qty,
		PurchasePrice: price,
		PurchaseDate:  time.Now().UTC(),
	}
}

// Validate checks purchase invariants.
func (p *Purchase) Validate(ctx context.Context) error {
	if id.IsNil(p.VariantID) {
		return apperror.NewValidation("variant is required").
			WithDetail("field", "variantId")
	}
	if !p.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", p.Quantity.String())
	}
	if p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "purchasePrice")
	}
	return nil
}
