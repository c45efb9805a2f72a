// Package balance derives a customer's outstanding credit. Balance is
// never stored; it is recomputed from sale items and payments on demand
// with exact decimal arithmetic.
package balance

import (
	"context"

	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

// SaleLine is the minimal slice of a sale item the calculator needs.
type SaleLine struct {
	Quantity    types.Quantity `db:"quantity"`
	PriceAtSale types.Money    `db:"price_at_sale"`
}

// Repository provides the raw rows the calculator aggregates.
type Repository interface {
	// SaleLines returns quantity and captured price for every sale item
	// across all of the customer's sales.
	SaleLines(ctx context.Context, customerID id.ID) ([]SaleLine, error)

	// PaymentAmounts returns the amount of every payment by the customer.
	PaymentAmounts(ctx context.Context, customerID id.ID) ([]types.Money, error)
}

// Compute is the pure aggregation:
//
//	balance = Σ(quantity × price_at_sale) − Σ(payment amount)
//
// Empty inputs contribute zero; a positive result means the customer
// owes money. Decimal arithmetic keeps 10,000 payments of 0.01 exact.
func Compute(lines []SaleLine, payments []types.Money) types.Money {
	total := types.ZeroMoney()
	for _, line := range lines {
		total = total.Add(line.Quantity.Decimal().Mul(line.PriceAtSale))
	}
	for _, amount := range payments {
		total = total.Sub(amount)
	}
	return total
}

// Calculator resolves a customer's rows and computes their balance.
type Calculator struct {
	repo Repository
}

// NewCalculator creates a balance calculator over the given repository.
func NewCalculator(repo Repository) *Calculator {
	return &Calculator{repo: repo}
}

// ForCustomer computes the customer's current balance.
func (c *Calculator) ForCustomer(ctx context.Context, customerID id.ID) (types.Money, error) {
	lines, err := c.repo.SaleLines(ctx, customerID)
	if err != nil {
		return types.ZeroMoney(), err
	}

	payments, err := c.repo.PaymentAmounts(ctx, customerID)
	if err != nil {
		return types.ZeroMoney(), err
	}

	return Compute(lines, payments), nil
}
