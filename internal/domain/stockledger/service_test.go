package stockledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
)

type mockRepo struct {
	stock map[id.ID]types.Quantity
}

func newMockRepo() *mockRepo {
	return &mockRepo{stock: make(map[id.ID]types.Quantity)}
}

func (m *mockRepo) ApplyDelta(ctx context.Context, variantID id.ID, delta types.Quantity) error {
	m.stock[variantID] += delta
	return nil
}

func (m *mockRepo) GetStock(ctx context.Context, variantID id.ID) (types.Quantity, error) {
	return m.stock[variantID], nil
}

func TestPurchaseLifecycle(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	variantID := id.New()

	require.NoError(t, svc.OnPurchaseCreated(ctx, variantID, types.NewQuantityFromFloat64(50)))
	assert.Equal(t, types.NewQuantityFromFloat64(50), repo.stock[variantID])

	require.NoError(t, svc.OnPurchaseDeleted(ctx, variantID, types.NewQuantityFromFloat64(50)))
	assert.True(t, repo.stock[variantID].IsZero())
}

func TestSaleItemDecrements(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	variantID := id.New()

	require.NoError(t, svc.OnSaleItemCreated(ctx, variantID, types.NewQuantityFromFloat64(5)))
	assert.Equal(t, types.NewQuantityFromFloat64(-5), repo.stock[variantID])
}

func TestStockMayGoNegative(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	variantID := id.New()

	// Deleting a purchase that stock never covered drives the counter
	// below zero; the ledger does not police availability.
	require.NoError(t, svc.OnPurchaseDeleted(ctx, variantID, types.NewQuantityFromFloat64(10)))
	assert.Equal(t, types.NewQuantityFromFloat64(-10), repo.stock[variantID])
}

func TestRevertRestoresEachItem(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a, b := id.New(), id.New()
	require.NoError(t, svc.OnSaleItemCreated(ctx, a, types.NewQuantityFromFloat64(3)))
	require.NoError(t, svc.OnSaleItemCreated(ctx, b, types.NewQuantityFromFloat64(7)))

	require.NoError(t, svc.OnSaleItemsReverted(ctx, []ReversalItem{
		{VariantID: a, Quantity: types.NewQuantityFromFloat64(3)},
		{VariantID: b, Quantity: types.NewQuantityFromFloat64(7)},
	}))

	assert.True(t, repo.stock[a].IsZero())
	assert.True(t, repo.stock[b].IsZero())
}

func TestNonPositiveQuantityRejected(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	variantID := id.New()

	for _, qty := range []types.Quantity{0, types.NewQuantityFromFloat64(-1)} {
		err := svc.OnPurchaseCreated(ctx, variantID, qty)
		assert.True(t, apperror.IsValidation(err), "qty %s", qty)

		err = svc.OnSaleItemCreated(ctx, variantID, qty)
		assert.True(t, apperror.IsValidation(err), "qty %s", qty)
	}
}
