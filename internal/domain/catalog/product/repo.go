package product

import (
	"context"

	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
)

// Repository defines persistence for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	Update(ctx context.Context, p *Product) error

	// Delete removes the product. Variants are removed with it
	// (ON DELETE CASCADE), which in turn is blocked if any variant is
	// referenced by purchases or sale items.
	Delete(ctx context.Context, productID id.ID) error

	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// ListAll returns every product ordered by name (for UI dropdowns).
	ListAll(ctx context.Context) ([]*Product, error)

	Exists(ctx context.Context, productID id.ID) (bool, error)
}

// VariantRepository defines persistence for product variants.
type VariantRepository interface {
	Create(ctx context.Context, v *Variant) error
	GetByID(ctx context.Context, variantID id.ID) (*Variant, error)

	// Update writes scalar fields (name, price, unit). It never touches
	// current_stock; that column belongs to the stock ledger.
	Update(ctx context.Context, v *Variant) error

	// Delete removes the variant. Blocked with a REFERENCE_PROTECTED
	// error when purchases or sale items reference it.
	Delete(ctx context.Context, variantID id.ID) error

	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Variant], error)
	ListByProduct(ctx context.Context, productID id.ID) ([]*Variant, error)
	Exists(ctx context.Context, variantID id.ID) (bool, error)
}
