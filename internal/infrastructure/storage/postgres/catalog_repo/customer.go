package catalog_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/domain"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const customersTable = "customers"

// balanceExpr derives the customer's outstanding credit in SQL:
// total credited (quantity is a scaled integer, 4 decimal places) minus
// total paid. NUMERIC arithmetic keeps the result exact.
const balanceExpr = `COALESCE((
		SELECT SUM(i.quantity * i.price_at_sale) / 10000
		FROM credit_sale_items i
		JOIN credit_sales s ON s.id = i.sale_id
		WHERE s.customer_id = customers.id
	), 0) - COALESCE((
		SELECT SUM(p.amount)
		FROM payments p
		WHERE p.customer_id = customers.id
	), 0)`

// CustomerRepo implements customer.Repository. List attaches a derived
// balance column; it is never stored.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			customersTable,
			[]string{"id", "name", "mobile", "address"},
			[]string{"name", "mobile", "address"},
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// List retrieves customers with the derived balance attached. Ordering
// by "balance" (or "-balance") sorts on the derived value.
func (r *CustomerRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customer.Customer], error) {
	result := domain.ListResult[*customer.Customer]{Limit: filter.Limit, Offset: filter.Offset}

	q := r.Builder().
		Select("id", "name", "mobile", "address", "("+balanceExpr+") AS balance").
		From(customersTable)
	if filter.Search != "" {
		q = q.Where(r.searchCondition(filter.Search))
	}

	countSQL, countArgs, err := r.Builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy, []string{"id", "name", "mobile", "address", "balance"})
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list customers: %w", err)
	}

	return result, nil
}

// ListAll returns every customer ordered by name, without the derived
// balance (dropdowns do not need it).
func (r *CustomerRepo) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	sql, args, err := r.Builder().
		Select("id", "name", "mobile", "address").
		From(customersTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var customers []*customer.Customer
	if err := pgxscan.Select(ctx, r.Querier(ctx), &customers, sql, args...); err != nil {
		return nil, fmt.Errorf("list all customers: %w", err)
	}

	return customers, nil
}
