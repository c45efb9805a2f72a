// Package register_repo provides the PostgreSQL implementation of the
// stock ledger register.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const variantsTable = "product_variants"

// StockRepo implements stockledger.Repository. It is the only code path
// that writes current_stock.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ApplyDelta adds delta to the variant's counter in a single UPDATE.
// The row lock serializes concurrent writers; no read-modify-write race
// is possible. The counter may go negative.
func (r *StockRepo) ApplyDelta(ctx context.Context, variantID id.ID, delta types.Quantity) error {
	sql, args, err := r.builder.Update(variantsTable).
		Set("current_stock", squirrel.Expr("current_stock + ?", delta)).
		Where(squirrel.Eq{"id": variantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(variantsTable, variantID.String())
	}

	return nil
}

// GetStock reads the current counter value.
func (r *StockRepo) GetStock(ctx context.Context, variantID id.ID) (types.Quantity, error) {
	sql, args, err := r.builder.Select("current_stock").
		From(variantsTable).
		Where(squirrel.Eq{"id": variantID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var stock types.Quantity
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&stock); err != nil {
		if pgxscan.NotFound(err) {
			return 0, apperror.NewNotFound(variantsTable, variantID.String())
		}
		return 0, fmt.Errorf("get stock: %w", err)
	}

	return stock, nil
}
