// Package creditsale provides the CreditSale document: a sale taken on
// account, which increases the customer's balance and decrements stock.
package creditsale

import (
	"context"
	"time"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

// CreditSale represents a single credit sale transaction for a customer.
type CreditSale struct {
	ID         id.ID `db:"id" json:"id"`
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// SaleDate is stamped at creation and never updated.
	SaleDate time.Time `db:"sale_date" json:"saleDate"`

	// CustomerName is annotated by list/get queries.
	CustomerName *string `db:"customer_name" json:"customerName,omitempty"`

	// Items is the sale's line items, loaded from their own table.
	Items []Item `db:"-" json:"items"`
}

// Item represents a single line within a credit sale.
type Item struct {
	ID        id.ID `db:"id" json:"-"`
	SaleID    id.ID `db:"sale_id" json:"-"`
	VariantID id.ID `db:"variant_id" json:"variant"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// PriceAtSale is captured when the item is written and never
	// recomputed from the variant's live price.
	PriceAtSale types.Money `db:"price_at_sale" json:"priceAtSale"`

	// VariantName is annotated by queries for display.
	VariantName *string `db:"variant_name" json:"variantName,omitempty"`
}

// Amount returns quantity × price_at_sale in exact decimal arithmetic.
func (i Item) Amount() types.Money {
	return i.Quantity.Decimal().Mul(i.PriceAtSale)
}

// NewCreditSale creates a sale stamped with the current time.
func NewCreditSale(customerID id.ID, items []Item) *CreditSale {
	sale := &CreditSale{
		ID:         id.New(),
		CustomerID: customerID,
		SaleDate:   time.Now().UTC(),
		Items:      items,
	}
	for i := range sale.Items {
		sale.Items[i].ID = id.New()
		sale.Items[i].SaleID = sale.ID
	}
	return sale
}

// Validate checks sale invariants.
func (s *CreditSale) Validate(ctx context.Context) error {
	if id.IsNil(s.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	return validateItems(s.Items)
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}
	for i, item := range items {
		if id.IsNil(item.VariantID) {
			return apperror.NewValidation("variant is required").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if !item.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("index", i).
				WithDetail("value", item.Quantity.String())
		}
		if item.PriceAtSale.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
	}
	return nil
}
