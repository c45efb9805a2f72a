// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
)

// Supplier represents a wholesaler that stock is purchased from.
type Supplier struct {
	ID            id.ID   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`
	Mobile        *string `db:"mobile" json:"mobile,omitempty"`
	Address       *string `db:"address" json:"address,omitempty"`
}

// NewSupplier creates a new Supplier with generated ID.
func NewSupplier(name string) *Supplier {
	return &Supplier{
		ID:   id.New(),
		Name: name,
	}
}

// Validate checks supplier invariants.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
