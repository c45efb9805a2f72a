// Package document_repo provides PostgreSQL implementations of the
// document repositories (purchases, credit sales, payments).
package document_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/infrastructure/storage/postgres"
)

// BaseDocumentRepo carries the shared plumbing of document
// repositories. Documents are listed through joins that attach display
// names, so each repository owns its SELECT; the base covers insert,
// delete and ordering.
type BaseDocumentRepo struct {
	txm       *postgres.TxManager
	builder   squirrel.StatementBuilderType
	tableName string
	// insertCols are real table columns; joined display columns are
	// select-only.
	insertCols []string
}

// NewBaseDocumentRepo creates a new base document repository.
func NewBaseDocumentRepo(txm *postgres.TxManager, tableName string, insertCols []string) *BaseDocumentRepo {
	return &BaseDocumentRepo{
		txm:        txm,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		tableName:  tableName,
		insertCols: insertCols,
	}
}

// Builder returns the dollar-placeholder squirrel builder.
func (r *BaseDocumentRepo) Builder() squirrel.StatementBuilderType {
	return r.builder
}

// Querier returns the active transaction from context, or the pool.
func (r *BaseDocumentRepo) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Insert writes a new document row from its real table columns.
func (r *BaseDocumentRepo) Insert(ctx context.Context, entity any) error {
	data := postgres.StructToMap(entity)
	filtered := make(map[string]any, len(r.insertCols))
	for _, col := range r.insertCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	if len(filtered) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	sql, args, err := r.builder.Insert(r.tableName).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		if appErr := postgres.MapConstraintError(err, r.tableName, filtered["id"]); appErr != nil {
			return appErr
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Delete removes the document row.
func (r *BaseDocumentRepo) Delete(ctx context.Context, entityID id.ID) error {
	sql, args, err := r.builder.Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if appErr := postgres.MapConstraintError(err, r.tableName, entityID); appErr != nil {
			return appErr
		}
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// ParseOrderBy validates orderBy ("purchase_date", "-purchase_date")
// against a column whitelist. defaultOrder applies when empty. Columns
// are qualified with alias to keep joined queries unambiguous.
func (r *BaseDocumentRepo) ParseOrderBy(orderBy, alias, defaultOrder string, allowedCols []string) (string, error) {
	if strings.TrimSpace(orderBy) == "" {
		return defaultOrder, nil
	}

	allowed := make(map[string]struct{}, len(allowedCols))
	for _, col := range allowedCols {
		allowed[col] = struct{}{}
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	return alias + "." + field + " " + direction, nil
}

// CountSelect counts rows of an arbitrary select (used for list totals).
func (r *BaseDocumentRepo) CountSelect(ctx context.Context, q squirrel.SelectBuilder) (int64, error) {
	countSQL, countArgs, err := r.builder.Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return total, nil
}
