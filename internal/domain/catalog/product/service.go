package product

import (
	"context"
	"fmt"

	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/pkg/logger"
)

// Service provides business logic for products and variants.
type Service struct {
	products Repository
	variants VariantRepository
}

// NewService creates a new product service.
func NewService(products Repository, variants VariantRepository) *Service {
	return &Service{
		products: products,
		variants: variants,
	}
}

// --- Products ---

// Create creates a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.products.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return nil
}

// GetByID retrieves a product with its variants.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.variants.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	p.Variants = make([]Variant, len(variants))
	for i, v := range variants {
		p.Variants[i] = *v
	}

	return p, nil
}

// Update modifies an existing product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	return s.products.Update(ctx, p)
}

// Delete removes a product and cascades to its variants.
// Fails with REFERENCE_PROTECTED when any variant has purchases or sale items.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	logger.Info(ctx, "product deleted", "id", productID)
	return nil
}

// List retrieves products with filtering and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	result, err := s.products.List(ctx, filter)
	if err != nil {
		return result, err
	}
	if err := s.attachVariants(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// ListAll returns all products with variants, ordered by name.
func (s *Service) ListAll(ctx context.Context) ([]*Product, error) {
	items, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachVariants(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) attachVariants(ctx context.Context, items []*Product) error {
	for _, p := range items {
		variants, err := s.variants.ListByProduct(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("list variants for %s: %w", p.ID, err)
		}
		p.Variants = make([]Variant, len(variants))
		for i, v := range variants {
			p.Variants[i] = *v
		}
	}
	return nil
}

// --- Variants ---

// CreateVariant creates a new variant under an existing product.
func (s *Service) CreateVariant(ctx context.Context, v *Variant) error {
	if err := v.Validate(ctx); err != nil {
		return err
	}

	// Reject unknown product before any write.
	if _, err := s.products.GetByID(ctx, v.ProductID); err != nil {
		return err
	}

	if err := s.variants.Create(ctx, v); err != nil {
		return err
	}

	logger.Info(ctx, "variant created", "id", v.ID, "product_id", v.ProductID, "name", v.Name)
	return nil
}

// GetVariant retrieves a variant by id.
func (s *Service) GetVariant(ctx context.Context, variantID id.ID) (*Variant, error) {
	return s.variants.GetByID(ctx, variantID)
}

// UpdateVariant modifies name, price and unit of a variant.
// current_stock is never written here.
func (s *Service) UpdateVariant(ctx context.Context, v *Variant) error {
	if err := v.Validate(ctx); err != nil {
		return err
	}
	return s.variants.Update(ctx, v)
}

// DeleteVariant removes a variant.
// Fails with REFERENCE_PROTECTED when purchases or sale items reference it.
func (s *Service) DeleteVariant(ctx context.Context, variantID id.ID) error {
	if err := s.variants.Delete(ctx, variantID); err != nil {
		return err
	}
	logger.Info(ctx, "variant deleted", "id", variantID)
	return nil
}

// ListVariants retrieves variants with filtering and pagination.
func (s *Service) ListVariants(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Variant], error) {
	return s.variants.List(ctx, filter)
}
