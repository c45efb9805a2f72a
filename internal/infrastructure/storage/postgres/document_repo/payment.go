package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/documents/payment"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const paymentsTable = "payments"

// PaymentRepo implements payment.Repository.
type PaymentRepo struct {
	*BaseDocumentRepo
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txm *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(txm, paymentsTable, []string{
			"id", "customer_id", "payment_date", "amount",
		}),
	}
}

func (r *PaymentRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select("p.id", "p.customer_id", "p.payment_date", "p.amount", "c.name AS customer_name").
		From(paymentsTable + " p").
		Join("customers c ON c.id = p.customer_id")
}

// Create inserts a new payment row.
func (r *PaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	return r.Insert(ctx, p)
}

// GetByID retrieves a payment with the customer name attached.
func (r *PaymentRepo) GetByID(ctx context.Context, paymentID id.ID) (*payment.Payment, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"p.id": paymentID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p payment.Payment
	if err := pgxscan.Get(ctx, r.Querier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(paymentsTable, paymentID.String())
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &p, nil
}

// Update rewrites customer and amount. payment_date is immutable.
func (r *PaymentRepo) Update(ctx context.Context, p *payment.Payment) error {
	sql, args, err := r.Builder().Update(paymentsTable).
		Set("customer_id", p.CustomerID).
		Set("amount", p.Amount).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if appErr := postgres.MapConstraintError(err, paymentsTable, p.ID); appErr != nil {
			return appErr
		}
		return fmt.Errorf("update payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(paymentsTable, p.ID.String())
	}

	return nil
}

// List retrieves payments newest first, customer names attached.
func (r *PaymentRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*payment.Payment], error) {
	result := domain.ListResult[*payment.Payment]{Limit: filter.Limit, Offset: filter.Offset}

	q := r.baseSelect()
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"c.name": "%" + filter.Search + "%"})
	}

	total, err := r.CountSelect(ctx, q)
	if err != nil {
		return result, err
	}
	result.TotalCount = total

	orderBy, err := r.ParseOrderBy(filter.OrderBy, "p", "p.payment_date DESC, p.id DESC",
		[]string{"id", "payment_date", "amount", "customer_id"})
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
		return result, fmt.Errorf("list payments: %w", err)
	}

	return result, nil
}
