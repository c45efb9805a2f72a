// Package customer provides the Customer catalog.
// Customers buy on credit and pay down their balance over time.
package customer

import (
	"context"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

// Customer represents a credit customer.
type Customer struct {
	ID      id.ID   `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Mobile  *string `db:"mobile" json:"mobile,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// Balance is annotated by list queries that order or report by
	// balance; nil when the query did not compute it.
	Balance *types.Money `db:"balance" json:"balance,omitempty"`
}

// NewCustomer creates a new Customer with generated ID.
func NewCustomer(name string) *Customer {
	return &Customer{
		ID:   id.New(),
		Name: name,
	}
}

// Validate checks customer invariants.
func (c *Customer) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
