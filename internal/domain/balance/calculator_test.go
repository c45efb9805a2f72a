package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

type mockRepo struct {
	lines    []SaleLine
	payments []types.Money
}

func (m *mockRepo) SaleLines(ctx context.Context, customerID id.ID) ([]SaleLine, error) {
	return m.lines, nil
}

func (m *mockRepo) PaymentAmounts(ctx context.Context, customerID id.ID) ([]types.Money, error) {
	return m.payments, nil
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, nil)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestComputeFormula(t *testing.T) {
	lines := []SaleLine{
		{Quantity: types.NewQuantityFromFloat64(2), PriceAtSale: types.MustMoney("25.00")},
		{Quantity: types.NewQuantityFromFloat64(0.5), PriceAtSale: types.MustMoney("19.99")},
	}
	payments := []types.Money{types.MustMoney("30.00")}

	// 2×25.00 + 0.5×19.99 − 30.00 = 29.995
	got := Compute(lines, payments)
	assert.True(t, types.MustMoney("29.995").Equal(got), "got %s", got)
}

func TestComputeOverpaymentGoesNegative(t *testing.T) {
	lines := []SaleLine{
		{Quantity: types.NewQuantityFromFloat64(1), PriceAtSale: types.MustMoney("10.00")},
	}
	payments := []types.Money{types.MustMoney("25.00")}

	got := Compute(lines, payments)
	assert.True(t, types.MustMoney("-15.00").Equal(got), "got %s", got)
}

func TestComputeManySmallPaymentsStayExact(t *testing.T) {
	lines := []SaleLine{
		{Quantity: types.NewQuantityFromFloat64(1), PriceAtSale: types.MustMoney("100.00")},
	}

	// Ten thousand payments of 0.01 must sum to exactly 100.00.
	payments := make([]types.Money, 10_000)
	for i := range payments {
		payments[i] = types.MustMoney("0.01")
	}

	got := Compute(lines, payments)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestCalculatorForCustomer(t *testing.T) {
	repo := &mockRepo{
		lines: []SaleLine{
			{Quantity: types.NewQuantityFromFloat64(3), PriceAtSale: types.MustMoney("7.50")},
		},
		payments: []types.Money{types.MustMoney("2.50")},
	}

	calc := NewCalculator(repo)
	got, err := calc.ForCustomer(context.Background(), id.New())
	require.NoError(t, err)
	assert.True(t, types.MustMoney("20.00").Equal(got), "got %s", got)
}
