package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/documents/purchase"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const purchasesTable = "purchases"

// PurchaseRepo implements purchase.Repository. Reads join in the
// supplier and variant display names.
type PurchaseRepo struct {
	*BaseDocumentRepo
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(txm, purchasesTable, []string{
			"id", "supplier_id", "variant_id", "quantity", "purchase_price", "purchase_date",
		}),
	}
}

func (r *PurchaseRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(
			"p.id", "p.supplier_id", "p.variant_id", "p.quantity",
			"p.purchase_price", "p.purchase_date",
			"s.name AS supplier_name",
			"pr.name || ' - ' || v.name AS variant_name",
		).
		From(purchasesTable + " p").
		LeftJoin("suppliers s ON s.id = p.supplier_id").
		Join("product_variants v ON v.id = p.variant_id").
		Join("products pr ON pr.id = v.product_id")
}

// Create inserts a new purchase row.
func (r *PurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	return r.Insert(ctx, p)
}

// GetByID retrieves a purchase with display names attached.
func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchase.Purchase, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"p.id": purchaseID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchase.Purchase
	if err := pgxscan.Get(ctx, r.Querier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(purchasesTable, purchaseID.String())
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	return &p, nil
}

// Update rewrites supplier, variant, quantity and price. purchase_date
// is immutable and never part of the SET list.
func (r *PurchaseRepo) Update(ctx context.Context, p *purchase.Purchase) error {
	sql, args, err := r.Builder().Update(purchasesTable).
		Set("supplier_id", p.SupplierID).
		Set("variant_id", p.VariantID).
		Set("quantity", p.Quantity).
		Set("purchase_price", p.PurchasePrice).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if appErr := postgres.MapConstraintError(err, purchasesTable, p.ID); appErr != nil {
			return appErr
		}
		return fmt.Errorf("update purchase: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(purchasesTable, p.ID.String())
	}

	return nil
}

// List retrieves purchases newest first, with display names attached.
func (r *PurchaseRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*purchase.Purchase], error) {
	result := domain.ListResult[*purchase.Purchase]{Limit: filter.Limit, Offset: filter.Offset}

	q := r.baseSelect()
	if filter.Search != "" {
		q = q.Where(squirrel.Or{
			squirrel.ILike{"s.name": "%" + filter.Search + "%"},
			squirrel.ILike{"pr.name": "%" + filter.Search + "%"},
			squirrel.ILike{"v.name": "%" + filter.Search + "%"},
		})
	}

	total, err := r.CountSelect(ctx, q)
	if err != nil {
		return result, err
	}
	result.TotalCount = total

	orderBy, err := r.ParseOrderBy(filter.OrderBy, "p", "p.purchase_date DESC, p.id DESC",
		[]string{"id", "purchase_date", "quantity", "purchase_price"})
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
		return result, fmt.Errorf("list purchases: %w", err)
	}

	return result, nil
}
