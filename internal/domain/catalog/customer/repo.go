package customer

import (
	"context"

	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
)

// Repository defines persistence for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)
	Update(ctx context.Context, c *Customer) error

	// Delete removes the customer; sales and payments cascade with it.
	Delete(ctx context.Context, customerID id.ID) error

	// List supports search across name prefix, mobile and address, and
	// ordering by name, id or derived balance.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error)

	// ListAll returns every customer ordered by name (for UI dropdowns).
	ListAll(ctx context.Context) ([]*Customer, error)

	Exists(ctx context.Context, customerID id.ID) (bool, error)
	Count(ctx context.Context) (int64, error)
}
