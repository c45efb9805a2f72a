package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const (
	creditSalesTable     = "credit_sales"
	creditSaleItemsTable = "credit_sale_items"
)

// CreditSaleRepo implements creditsale.Repository. Sale rows and item
// rows live in two tables; items cascade with their sale.
type CreditSaleRepo struct {
	*BaseDocumentRepo
}

// NewCreditSaleRepo creates a new credit sale repository.
func NewCreditSaleRepo(txm *postgres.TxManager) *CreditSaleRepo {
	return &CreditSaleRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(txm, creditSalesTable, []string{
			"id", "customer_id", "sale_date",
		}),
	}
}

func (r *CreditSaleRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select("cs.id", "cs.customer_id", "cs.sale_date", "c.name AS customer_name").
		From(creditSalesTable + " cs").
		Join("customers c ON c.id = cs.customer_id")
}

// Create inserts the sale row. Items are written through CreateItem so
// the service can interleave stock-ledger calls per item.
func (r *CreditSaleRepo) Create(ctx context.Context, sale *creditsale.CreditSale) error {
	return r.Insert(ctx, sale)
}

// GetByID retrieves the sale row with the customer name attached.
// Items are loaded separately through GetItems.
func (r *CreditSaleRepo) GetByID(ctx context.Context, saleID id.ID) (*creditsale.CreditSale, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"cs.id": saleID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale creditsale.CreditSale
	if err := pgxscan.Get(ctx, r.Querier(ctx), &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(creditSalesTable, saleID.String())
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	return &sale, nil
}

// UpdateCustomer reassigns the sale to another customer. sale_date is
// immutable and never part of the SET list.
func (r *CreditSaleRepo) UpdateCustomer(ctx context.Context, saleID, customerID id.ID) error {
	sql, args, err := r.Builder().Update(creditSalesTable).
		Set("customer_id", customerID).
		Where(squirrel.Eq{"id": saleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if appErr := postgres.MapConstraintError(err, creditSalesTable, saleID); appErr != nil {
			return appErr
		}
		return fmt.Errorf("update sale: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(creditSalesTable, saleID.String())
	}

	return nil
}

// List retrieves sales newest first, customer names attached. Items are
// loaded per sale by the service.
func (r *CreditSaleRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*creditsale.CreditSale], error) {
	result := domain.ListResult[*creditsale.CreditSale]{Limit: filter.Limit, Offset: filter.Offset}

	q := r.baseSelect()
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"c.name": "%" + filter.Search + "%"})
	}

	total, err := r.CountSelect(ctx, q)
	if err != nil {
		return result, err
	}
	result.TotalCount = total

	orderBy, err := r.ParseOrderBy(filter.OrderBy, "cs", "cs.sale_date DESC, cs.id DESC",
		[]string{"id", "sale_date", "customer_id"})
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

	if err := pgxscan.Select(ctx, r.Querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list sales: %w", err)
	}

	return result, nil
}

// GetItems returns the sale's items with variant display names.
func (r *CreditSaleRepo) GetItems(ctx context.Context, saleID id.ID) ([]creditsale.Item, error) {
	sql, args, err := r.Builder().
		Select(
			"i.id", "i.sale_id", "i.variant_id", "i.quantity", "i.price_at_sale",
			"pr.name || ' - ' || v.name AS variant_name",
		).
		From(creditSaleItemsTable + " i").
		Join("product_variants v ON v.id = i.variant_id").
		Join("products pr ON pr.id = v.product_id").
		Where(squirrel.Eq{"i.sale_id": saleID}).
		OrderBy("i.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []creditsale.Item
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}

	return items, nil
}

// CreateItem inserts one sale item row.
func (r *CreditSaleRepo) CreateItem(ctx context.Context, item *creditsale.Item) error {
	sql, args, err := r.Builder().Insert(creditSaleItemsTable).
		SetMap(map[string]any{
			"id":            item.ID,
			"sale_id":       item.SaleID,
			"variant_id":    item.VariantID,
			"quantity":      item.Quantity,
			"price_at_sale": item.PriceAtSale,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		if appErr := postgres.MapConstraintError(err, creditSaleItemsTable, item.ID); appErr != nil {
			return appErr
		}
		return fmt.Errorf("insert sale item: %w", err)
	}

	return nil
}

// DeleteItems removes every item of the sale.
func (r *CreditSaleRepo) DeleteItems(ctx context.Context, saleID id.ID) error {
	sql, args, err := r.Builder().Delete(creditSaleItemsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}

	return nil
}
