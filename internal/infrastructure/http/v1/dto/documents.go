package dto

import (
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/domain/documents/payment"
	"kiranabook/internal/domain/documents/purchase"
)

// --- Purchase ---

// PurchaseRequest is the body for creating or updating a purchase.
// The document date is stamped at creation and cannot be changed.
type PurchaseRequest struct {
	SupplierID    *id.ID         `json:"supplierId"`
	VariantID     id.ID          `json:"variantId" binding:"required"`
	Quantity      types.Quantity `json:"quantity"`
	PurchasePrice types.Money    `json:"purchasePrice"`
}

// ToEntity creates a new purchase from the request.
func (r PurchaseRequest) ToEntity() *purchase.Purchase {
	return purchase.NewPurchase(r.SupplierID, r.VariantID, r.Quantity, r.PurchasePrice)
}

// ApplyTo writes the mutable fields onto an existing purchase.
func (r PurchaseRequest) ApplyTo(p *purchase.Purchase) {
	p.SupplierID = r.SupplierID
	p.VariantID = r.VariantID
	p.Quantity = r.Quantity
	p.PurchasePrice = r.PurchasePrice
}

// --- Credit sale ---

// SaleItemRequest is one line of a credit sale.
type SaleItemRequest struct {
	VariantID   id.ID          `json:"variant" binding:"required"`
	Quantity    types.Quantity `json:"quantity"`
	PriceAtSale types.Money    `json:"priceAtSale"`
}

// SaleRequest is the body for creating or updating a credit sale.
// Updates replace the item set wholesale; the sale date is stamped at
// creation and cannot be changed.
type SaleRequest struct {
	CustomerID id.ID             `json:"customerId" binding:"required"`
	Items      []SaleItemRequest `json:"items" binding:"required"`
}

// ToEntity creates a new sale with its items from the request.
func (r SaleRequest) ToEntity() *creditsale.CreditSale {
	return creditsale.NewCreditSale(r.CustomerID, r.toItems())
}

// ToItems converts the request lines to domain items (ids unset; the
// service assigns them).
func (r SaleRequest) ToItems() []creditsale.Item {
	return r.toItems()
}

func (r SaleRequest) toItems() []creditsale.Item {
	items := make([]creditsale.Item, len(r.Items))
	for i, line := range r.Items {
		items[i] = creditsale.Item{
			VariantID:   line.VariantID,
			Quantity:    line.Quantity,
			PriceAtSale: line.PriceAtSale,
		}
	}
	return items
}

// --- Payment ---

// PaymentRequest is the body for creating or updating a payment.
// The payment date is stamped at creation and cannot be changed.
type PaymentRequest struct {
	CustomerID id.ID       `json:"customerId" binding:"required"`
	Amount     types.Money `json:"amount"`
}

// ToEntity creates a new payment from the request.
func (r PaymentRequest) ToEntity() *payment.Payment {
	return payment.NewPayment(r.CustomerID, r.Amount)
}

// ApplyTo writes the mutable fields onto an existing payment.
func (r PaymentRequest) ApplyTo(p *payment.Payment) {
	p.CustomerID = r.CustomerID
	p.Amount = r.Amount
}
