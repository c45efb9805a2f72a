// Package stockledger maintains the current_stock counter on product
// variants. It is the only code path allowed to write that column.
package stockledger

import (
	"context"

	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

// Repository defines the persistence operations for the stock counter.
type Repository interface {
	// ApplyDelta adds delta (possibly negative) to the variant's
	// current_stock in a single UPDATE, so concurrent writers serialize
	// on the row lock. Returns NOT_FOUND for an unknown variant.
	ApplyDelta(ctx context.Context, variantID id.ID, delta types.Quantity) error

	// GetStock reads the current counter value.
	GetStock(ctx context.Context, variantID id.ID) (types.Quantity, error)
}
