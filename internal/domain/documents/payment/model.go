// Package payment provides the Payment document: money received from a
// customer against their outstanding credit.
package payment

import (
	"context"
	"time"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

// Payment represents a payment received from a customer.
type Payment struct {
	ID         id.ID `db:"id" json:"id"`
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// PaymentDate is stamped at creation and never updated.
	PaymentDate time.Time `db:"payment_date" json:"paymentDate"`

	Amount types.Money `db:"amount" json:"amount"`

	// CustomerName is annotated by list/get queries.
	CustomerName *string `db:"customer_name" json:"customerName,omitempty"`
}

// NewPayment creates a payment stamped with the current time.
func NewPayment(customerID id.ID, amount types.Money) *Payment {
	return &Payment{
		ID:          id.New(),
		CustomerID:  customerID,
		PaymentDate: time.Now().UTC(),
		Amount:      amount,
	}
}

// Validate checks payment invariants.
func (p *Payment) Validate(ctx context.Context) error {
	if id.IsNil(p.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", p.Amount.String())
	}
	return nil
}
