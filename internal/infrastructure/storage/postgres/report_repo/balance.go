package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/domain/balance"
	"kiranabook/internal/infrastructure/storage/postgres"
)

// BalanceRepo implements balance.Repository: it fetches the raw sale
// lines and payment amounts for one customer, and the calculator does
// the arithmetic in Go.
type BalanceRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewBalanceRepo creates a new balance repository.
func NewBalanceRepo(txm *postgres.TxManager) *BalanceRepo {
	return &BalanceRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// SaleLines returns quantity and captured price for every sale item
// across all of the customer's sales.
func (r *BalanceRepo) SaleLines(ctx context.Context, customerID id.ID) ([]balance.SaleLine, error) {
	sql, args, err := r.builder.
		Select("i.quantity", "i.price_at_sale").
		From("credit_sale_items i").
		Join("credit_sales s ON s.id = i.sale_id").
		Where(squirrel.Eq{"s.customer_id": customerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []balance.SaleLine
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("sale lines: %w", err)
	}

	return lines, nil
}

// PaymentAmounts returns the amount of every payment by the customer.
func (r *BalanceRepo) PaymentAmounts(ctx context.Context, customerID id.ID) ([]types.Money, error) {
	sql, args, err := r.builder.
		Select("amount").
		From("payments").
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var amounts []types.Money
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &amounts, sql, args...); err != nil {
		return nil, fmt.Errorf("payment amounts: %w", err)
	}

	return amounts, nil
}
