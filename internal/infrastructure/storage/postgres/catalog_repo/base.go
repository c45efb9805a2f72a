// Package catalog_repo provides PostgreSQL implementations of the
// catalog repositories (products, variants, customers, suppliers).
package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/domain"
	"kiranabook/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo provides common CRUD for catalog entities. Deletes
// are hard deletes; referential policy lives in the schema and surfaces
// through postgres.MapConstraintError.
type BaseCatalogRepo[T any] struct {
	txm       *postgres.TxManager
	builder   squirrel.StatementBuilderType
	tableName string
	// columns are real table columns; derived select-only columns
	// (like a computed balance) are never part of INSERT/UPDATE.
	columns    []string
	searchCols []string
	newFn      func() T
}

// NewBaseCatalogRepo creates a new base catalog repository.
func NewBaseCatalogRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	columns []string,
	searchCols []string,
	newFn func() T,
) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		txm:        txm,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		tableName:  tableName,
		columns:    columns,
		searchCols: searchCols,
		newFn:      newFn,
	}
}

// Builder returns the dollar-placeholder squirrel builder.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return r.builder
}

// Querier returns the active transaction from context, or the pool.
func (r *BaseCatalogRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new catalog entity.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity T) error {
	data := r.columnData(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	sql, args, err := r.builder.Insert(r.tableName).SetMap(data).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		if appErr := postgres.MapConstraintError(err, r.tableName, data["id"]); appErr != nil {
			return appErr
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update rewrites all mutable columns of an existing entity.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, entity T) error {
	data := r.columnData(entity)
	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}
	delete(data, "id")

	sql, args, err := r.builder.Update(r.tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if appErr := postgres.MapConstraintError(err, r.tableName, entityID); appErr != nil {
			return appErr
		}
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, fmt.Sprint(entityID))
	}

	return nil
}

// Delete removes the entity row. FK policy decides what happens to
// referencing rows; a RESTRICT violation maps to REFERENCE_PROTECTED.
func (r *BaseCatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
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

// GetByID retrieves an entity by id.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"id": entityID}).ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}

	return entity, nil
}

// Exists reports whether an entity with the given id exists.
func (r *BaseCatalogRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	sql, args, err := r.builder.Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("exists %s: %w", r.tableName, err)
	}

	return true, nil
}

// Count returns the total number of rows in the table.
func (r *BaseCatalogRepo[T]) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.builder.Select("COUNT(*)").From(r.tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.tableName, err)
	}

	return total, nil
}

// List retrieves entities with search, ordering and pagination.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{Limit: filter.Limit, Offset: filter.Offset}

	q := r.baseSelect()
	if filter.Search != "" {
		q = q.Where(r.searchCondition(filter.Search))
	}

	countSQL, countArgs, err := r.builder.Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy, r.columns)
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
		return result, fmt.Errorf("list %s: %w", r.tableName, err)
	}

	return result, nil
}

// ListAll returns every entity ordered by name, for dropdowns.
func (r *BaseCatalogRepo[T]) ListAll(ctx context.Context) ([]T, error) {
	sql, args, err := r.baseSelect().OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list all %s: %w", r.tableName, err)
	}

	return items, nil
}

func (r *BaseCatalogRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(r.columns...).From(r.tableName)
}

// searchCondition matches the search term as a name prefix and as a
// substring of the remaining search columns.
func (r *BaseCatalogRepo[T]) searchCondition(search string) squirrel.Sqlizer {
	or := squirrel.Or{}
	for _, col := range r.searchCols {
		if col == "name" {
			or = append(or, squirrel.ILike{col: search + "%"})
			continue
		}
		or = append(or, squirrel.ILike{col: "%" + search + "%"})
	}
	return or
}

// parseOrderBy validates an orderBy value ("name", "-name") against a
// column whitelist.
func (r *BaseCatalogRepo[T]) parseOrderBy(orderBy string, allowedCols []string) (string, error) {
	allowed := make(map[string]struct{}, len(allowedCols)+1)
	for _, col := range allowedCols {
		allowed[col] = struct{}{}
	}
	allowed["id"] = struct{}{}

	if strings.TrimSpace(orderBy) == "" {
		return "name ASC", nil
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

	return field + " " + direction, nil
}

func (r *BaseCatalogRepo[T]) columnData(entity T) map[string]any {
	data := postgres.StructToMap(entity)
	filtered := make(map[string]any, len(r.columns))
	for _, col := range r.columns {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	return filtered
}
