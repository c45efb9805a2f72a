package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiranabook/internal/core/apperror"
)

func TestMapConstraintErrorForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "credit_sale_items_variant_id_fkey"}

	appErr := MapConstraintError(fmt.Errorf("exec: %w", pgErr), "product_variants", "abc")
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeReferenceProtected, appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestMapConstraintErrorUnique(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_name_key"}

	appErr := MapConstraintError(pgErr, "products", "abc")
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Equal(t, "products_name_key", appErr.Details["constraint"])
}

func TestMapConstraintErrorPassesThroughOthers(t *testing.T) {
	assert.Nil(t, MapConstraintError(errors.New("connection reset"), "products", "abc"))
	assert.Nil(t, MapConstraintError(&pgconn.PgError{Code: "40001"}, "products", "abc"))
}
