package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

func TestProductValidate(t *testing.T) {
	ctx := context.Background()

	p := NewProduct("Basmati Rice")
	require.NoError(t, p.Validate(ctx))

	p.Name = ""
	assert.True(t, apperror.IsValidation(p.Validate(ctx)))
}

func TestVariantValidate(t *testing.T) {
	ctx := context.Background()
	productID := id.New()

	v := NewVariant(productID, "1kg", types.MustMoney("45.00"), UnitKg)
	require.NoError(t, v.Validate(ctx))

	v.Name = ""
	assert.True(t, apperror.IsValidation(v.Validate(ctx)))

	v = NewVariant(productID, "1kg", types.MustMoney("-1.00"), UnitKg)
	assert.True(t, apperror.IsValidation(v.Validate(ctx)))

	v = NewVariant(productID, "1kg", types.MustMoney("45.00"), Unit("dozen"))
	assert.True(t, apperror.IsValidation(v.Validate(ctx)))

	v = NewVariant(id.Nil(), "1kg", types.MustMoney("45.00"), UnitKg)
	assert.True(t, apperror.IsValidation(v.Validate(ctx)))
}
