package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/catalog/supplier"
	"kiranabook/internal/domain/stockledger"
)

// --- Mocks ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stockRepo struct {
	stock map[id.ID]types.Quantity
}

func (m *stockRepo) ApplyDelta(ctx context.Context, variantID id.ID, delta types.Quantity) error {
	m.stock[variantID] += delta
	return nil
}

func (m *stockRepo) GetStock(ctx context.Context, variantID id.ID) (types.Quantity, error) {
	return m.stock[variantID], nil
}

type purchaseRepo struct {
	rows map[id.ID]*Purchase
}

func (m *purchaseRepo) Create(ctx context.Context, p *Purchase) error {
	m.rows[p.ID] = p
	return nil
}

func (m *purchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	p, ok := m.rows[purchaseID]
	if !ok {
		return nil, apperror.NewNotFound("purchases", purchaseID.String())
	}
	return p, nil
}

func (m *purchaseRepo) Update(ctx context.Context, p *Purchase) error {
	if _, ok := m.rows[p.ID]; !ok {
		return apperror.NewNotFound("purchases", p.ID.String())
	}
	m.rows[p.ID] = p
	return nil
}

func (m *purchaseRepo) Delete(ctx context.Context, purchaseID id.ID) error {
	if _, ok := m.rows[purchaseID]; !ok {
		return apperror.NewNotFound("purchases", purchaseID.String())
	}
	delete(m.rows, purchaseID)
	return nil
}

func (m *purchaseRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Purchase], error) {
	return domain.ListResult[*Purchase]{}, nil
}

type variantRepo struct {
	rows map[id.ID]*product.Variant
}

func (m *variantRepo) Create(ctx context.Context, v *product.Variant) error {
	m.rows[v.ID] = v
	return nil
}

func (m *variantRepo) GetByID(ctx context.Context, variantID id.ID) (*product.Variant, error) {
	v, ok := m.rows[variantID]
	if !ok {
		return nil, apperror.NewNotFound("product_variants", variantID.String())
	}
	return v, nil
}

func (m *variantRepo) Update(ctx context.Context, v *product.Variant) error { return nil }
func (m *variantRepo) Delete(ctx context.Context, variantID id.ID) error    { return nil }

func (m *variantRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Variant], error) {
	return domain.ListResult[*product.Variant]{}, nil
}

func (m *variantRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*product.Variant, error) {
	return nil, nil
}

func (m *variantRepo) Exists(ctx context.Context, variantID id.ID) (bool, error) {
	_, ok := m.rows[variantID]
	return ok, nil
}

type supplierRepo struct {
	rows map[id.ID]*supplier.Supplier
}

func (m *supplierRepo) Create(ctx context.Context, s *supplier.Supplier) error { return nil }

func (m *supplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	s, ok := m.rows[supplierID]
	if !ok {
		return nil, apperror.NewNotFound("suppliers", supplierID.String())
	}
	return s, nil
}

func (m *supplierRepo) Update(ctx context.Context, s *supplier.Supplier) error { return nil }
func (m *supplierRepo) Delete(ctx context.Context, supplierID id.ID) error     { return nil }

func (m *supplierRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*supplier.Supplier], error) {
	return domain.ListResult[*supplier.Supplier]{}, nil
}

func (m *supplierRepo) Exists(ctx context.Context, supplierID id.ID) (bool, error) {
	_, ok := m.rows[supplierID]
	return ok, nil
}

type fixture struct {
	svc      *Service
	repo     *purchaseRepo
	variants *variantRepo
	stock    *stockRepo
	variant  *product.Variant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	variants := &variantRepo{rows: make(map[id.ID]*product.Variant)}
	v := product.NewVariant(id.New(), "1kg", types.MustMoney("45.00"), product.UnitKg)
	variants.rows[v.ID] = v

	stock := &stockRepo{stock: make(map[id.ID]types.Quantity)}
	repo := &purchaseRepo{rows: make(map[id.ID]*Purchase)}
	suppliers := &supplierRepo{rows: make(map[id.ID]*supplier.Supplier)}

	svc := NewService(repo, variants, suppliers, stockledger.NewService(stock), fakeTxManager{})
	return &fixture{svc: svc, repo: repo, variants: variants, stock: stock, variant: v}
}

// --- Tests ---

func TestCreateIncrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPurchase(nil, f.variant.ID, types.NewQuantityFromFloat64(50), types.MustMoney("40.00"))
	require.NoError(t, f.svc.Create(ctx, p))

	assert.Equal(t, types.NewQuantityFromFloat64(50), f.stock.stock[f.variant.ID])
	assert.Contains(t, f.repo.rows, p.ID)
}

func TestCreateUnknownVariantRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPurchase(nil, id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("1.00"))
	err := f.svc.Create(ctx, p)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.stock.stock)
}

func TestCreateUnknownSupplierRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	unknown := id.New()
	p := NewPurchase(&unknown, f.variant.ID, types.NewQuantityFromFloat64(1), types.MustMoney("1.00"))
	err := f.svc.Create(ctx, p)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.repo.rows)
}

func TestUpdateDoesNotAdjustStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPurchase(nil, f.variant.ID, types.NewQuantityFromFloat64(50), types.MustMoney("40.00"))
	require.NoError(t, f.svc.Create(ctx, p))

	// Correct the recorded quantity; the counter must not move.
	p.Quantity = types.NewQuantityFromFloat64(30)
	require.NoError(t, f.svc.Update(ctx, p))

	assert.Equal(t, types.NewQuantityFromFloat64(50), f.stock.stock[f.variant.ID])
}

func TestDeleteRevertsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPurchase(nil, f.variant.ID, types.NewQuantityFromFloat64(50), types.MustMoney("40.00"))
	require.NoError(t, f.svc.Create(ctx, p))
	require.NoError(t, f.svc.Delete(ctx, p.ID))

	assert.True(t, f.stock.stock[f.variant.ID].IsZero())
	assert.Empty(t, f.repo.rows)
}

func TestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPurchase(nil, f.variant.ID, 0, types.MustMoney("40.00"))
	assert.True(t, apperror.IsValidation(f.svc.Create(ctx, p)))

	p = NewPurchase(nil, f.variant.ID, types.NewQuantityFromFloat64(1), types.MustMoney("-1.00"))
	assert.True(t, apperror.IsValidation(f.svc.Create(ctx, p)))
}
