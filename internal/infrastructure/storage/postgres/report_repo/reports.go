// Package report_repo provides PostgreSQL read models for dashboards
// and the customer ledger view. Everything here is derived on demand;
// nothing is materialized.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/id"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/domain/documents/payment"
	"kiranabook/internal/domain/reports"
	"kiranabook/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// LowStockVariants returns variants ascending by current_stock. Ties
// break by id; ids are time-ordered, so equal-stock variants list in
// insertion order.
func (r *ReportRepo) LowStockVariants(ctx context.Context, limit int) ([]product.Variant, error) {
	sql, args, err := r.builder.
		Select(postgres.ExtractDBColumns[product.Variant]()...).
		From("product_variants").
		OrderBy("current_stock ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var variants []product.Variant
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &variants, sql, args...); err != nil {
		return nil, fmt.Errorf("low stock variants: %w", err)
	}

	return variants, nil
}

// CustomerBalances returns every customer with their derived balance,
// largest debt first.
func (r *ReportRepo) CustomerBalances(ctx context.Context) ([]reports.CustomerBalance, error) {
	// quantity is a scaled integer (4 decimal places); dividing the
	// NUMERIC product by 10000 restores the real quantity exactly.
	const query = `
		SELECT c.id AS customer_id,
		       c.name,
		       COALESCE(credited.total, 0) - COALESCE(paid.total, 0) AS balance
		FROM customers c
		LEFT JOIN (
			SELECT s.customer_id, SUM(i.quantity * i.price_at_sale) / 10000 AS total
			FROM credit_sale_items i
			JOIN credit_sales s ON s.id = i.sale_id
			GROUP BY s.customer_id
		) credited ON credited.customer_id = c.id
		LEFT JOIN (
			SELECT p.customer_id, SUM(p.amount) AS total
			FROM payments p
			GROUP BY p.customer_id
		) paid ON paid.customer_id = c.id
		ORDER BY balance DESC, c.id ASC`

	var balances []reports.CustomerBalance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, query); err != nil {
		return nil, fmt.Errorf("customer balances: %w", err)
	}

	return balances, nil
}

// CountVariants returns the total number of product variants.
func (r *ReportRepo) CountVariants(ctx context.Context) (int64, error) {
	sql, args, err := r.builder.Select("COUNT(*)").From("product_variants").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count variants: %w", err)
	}

	return total, nil
}

// SalesByCustomer returns the customer's sales newest first, items
// attached.
func (r *ReportRepo) SalesByCustomer(ctx context.Context, customerID id.ID) ([]*creditsale.CreditSale, error) {
	sql, args, err := r.builder.
		Select("cs.id", "cs.customer_id", "cs.sale_date", "c.name AS customer_name").
		From("credit_sales cs").
		Join("customers c ON c.id = cs.customer_id").
		Where(squirrel.Eq{"cs.customer_id": customerID}).
		OrderBy("cs.sale_date DESC", "cs.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var sales []*creditsale.CreditSale
	if err := pgxscan.Select(ctx, querier, &sales, sql, args...); err != nil {
		return nil, fmt.Errorf("sales by customer: %w", err)
	}

	for _, sale := range sales {
		items, err := r.saleItems(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}

	return sales, nil
}

// PaymentsByCustomer returns the customer's payments newest first.
func (r *ReportRepo) PaymentsByCustomer(ctx context.Context, customerID id.ID) ([]*payment.Payment, error) {
	sql, args, err := r.builder.
		Select("p.id", "p.customer_id", "p.payment_date", "p.amount", "c.name AS customer_name").
		From("payments p").
		Join("customers c ON c.id = p.customer_id").
		Where(squirrel.Eq{"p.customer_id": customerID}).
		OrderBy("p.payment_date DESC", "p.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var payments []*payment.Payment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &payments, sql, args...); err != nil {
		return nil, fmt.Errorf("payments by customer: %w", err)
	}

	return payments, nil
}

func (r *ReportRepo) saleItems(ctx context.Context, saleID id.ID) ([]creditsale.Item, error) {
	sql, args, err := r.builder.
		Select(
			"i.id", "i.sale_id", "i.variant_id", "i.quantity", "i.price_at_sale",
			"pr.name || ' - ' || v.name AS variant_name",
		).
		From("credit_sale_items i").
		Join("product_variants v ON v.id = i.variant_id").
		Join("products pr ON pr.id = v.product_id").
		Where(squirrel.Eq{"i.sale_id": saleID}).
		OrderBy("i.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []creditsale.Item
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("sale items: %w", err)
	}

	return items, nil
}
