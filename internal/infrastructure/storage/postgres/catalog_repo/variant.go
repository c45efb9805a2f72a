package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const variantsTable = "product_variants"

// VariantRepo implements product.VariantRepository.
type VariantRepo struct {
	*BaseCatalogRepo[*product.Variant]
}

// NewVariantRepo creates a new product variant repository.
func NewVariantRepo(txm *postgres.TxManager) *VariantRepo {
	return &VariantRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			variantsTable,
			postgres.ExtractDBColumns[product.Variant](),
			[]string{"name"},
			func() *product.Variant { return &product.Variant{} },
		),
	}
}

// Update writes the variant's scalar fields. current_stock is owned by
// the stock ledger and is never part of the SET list here.
func (r *VariantRepo) Update(ctx context.Context, v *product.Variant) error {
	sql, args, err := r.Builder().Update(variantsTable).
		Set("product_id", v.ProductID).
		Set("name", v.Name).
		Set("price", v.Price).
		Set("unit", v.Unit).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if appErr := postgres.MapConstraintError(err, variantsTable, v.ID); appErr != nil {
			return appErr
		}
		return fmt.Errorf("update %s: %w", variantsTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(variantsTable, v.ID.String())
	}

	return nil
}

// ListByProduct returns all variants of one product, ordered by name.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*product.Variant, error) {
	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[product.Variant]()...).
		From(variantsTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var variants []*product.Variant
	if err := pgxscan.Select(ctx, r.Querier(ctx), &variants, sql, args...); err != nil {
		return nil, fmt.Errorf("list variants by product: %w", err)
	}

	return variants, nil
}
