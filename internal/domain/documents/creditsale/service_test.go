package creditsale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiranabook/internal/core/apperror"
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/domain"
	"kiranabook/internal/domain/balance"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/internal/domain/catalog/product"
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

type saleRepo struct {
	sales map[id.ID]*CreditSale
	items map[id.ID][]Item
}

func newSaleRepo() *saleRepo {
	return &saleRepo{sales: make(map[id.ID]*CreditSale), items: make(map[id.ID][]Item)}
}

func (m *saleRepo) Create(ctx context.Context, sale *CreditSale) error {
	clone := *sale
	clone.Items = nil
	m.sales[sale.ID] = &clone
	return nil
}

func (m *saleRepo) GetByID(ctx context.Context, saleID id.ID) (*CreditSale, error) {
	sale, ok := m.sales[saleID]
	if !ok {
		return nil, apperror.NewNotFound("credit_sales", saleID.String())
	}
	clone := *sale
	return &clone, nil
}

func (m *saleRepo) UpdateCustomer(ctx context.Context, saleID, customerID id.ID) error {
	sale, ok := m.sales[saleID]
	if !ok {
		return apperror.NewNotFound("credit_sales", saleID.String())
	}
	sale.CustomerID = customerID
	return nil
}

func (m *saleRepo) Delete(ctx context.Context, saleID id.ID) error {
	if _, ok := m.sales[saleID]; !ok {
		return apperror.NewNotFound("credit_sales", saleID.String())
	}
	delete(m.sales, saleID)
	delete(m.items, saleID)
	return nil
}

func (m *saleRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*CreditSale], error) {
	return domain.ListResult[*CreditSale]{}, nil
}

func (m *saleRepo) GetItems(ctx context.Context, saleID id.ID) ([]Item, error) {
	return append([]Item(nil), m.items[saleID]...), nil
}

func (m *saleRepo) CreateItem(ctx context.Context, item *Item) error {
	m.items[item.SaleID] = append(m.items[item.SaleID], *item)
	return nil
}

func (m *saleRepo) DeleteItems(ctx context.Context, saleID id.ID) error {
	delete(m.items, saleID)
	return nil
}

type customerRepo struct {
	rows map[id.ID]*customer.Customer
}

func (m *customerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }

func (m *customerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := m.rows[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customers", customerID.String())
	}
	return c, nil
}

func (m *customerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }
func (m *customerRepo) Delete(ctx context.Context, customerID id.ID) error     { return nil }

func (m *customerRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customer.Customer], error) {
	return domain.ListResult[*customer.Customer]{}, nil
}

func (m *customerRepo) ListAll(ctx context.Context) ([]*customer.Customer, error) { return nil, nil }

func (m *customerRepo) Exists(ctx context.Context, customerID id.ID) (bool, error) {
	_, ok := m.rows[customerID]
	return ok, nil
}

func (m *customerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}

type variantRepo struct {
	rows map[id.ID]*product.Variant
}

func (m *variantRepo) Create(ctx context.Context, v *product.Variant) error { return nil }

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

type fixture struct {
	svc      *Service
	repo     *saleRepo
	stock    *stockRepo
	customer *customer.Customer
	variant  *product.Variant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	customers := &customerRepo{rows: make(map[id.ID]*customer.Customer)}
	cust := customer.NewCustomer("Ramesh")
	customers.rows[cust.ID] = cust

	variants := &variantRepo{rows: make(map[id.ID]*product.Variant)}
	v := product.NewVariant(id.New(), "1kg", types.MustMoney("10.00"), product.UnitKg)
	variants.rows[v.ID] = v

	stock := &stockRepo{stock: make(map[id.ID]types.Quantity)}
	repo := newSaleRepo()

	svc := NewService(repo, customers, variants, stockledger.NewService(stock), fakeTxManager{})
	return &fixture{svc: svc, repo: repo, stock: stock, customer: cust, variant: v}
}

func (f *fixture) balanceOf(t *testing.T) types.Money {
	t.Helper()

	var lines []balance.SaleLine
	for _, items := range f.repo.items {
		for _, item := range items {
			lines = append(lines, balance.SaleLine{Quantity: item.Quantity, PriceAtSale: item.PriceAtSale})
		}
	}
	return balance.Compute(lines, nil)
}

// --- Tests ---

func TestCreateDecrementsStockAndCapturesPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.stock.stock[f.variant.ID] = types.NewQuantityFromFloat64(50)

	sale := NewCreditSale(f.customer.ID, []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(5), PriceAtSale: types.MustMoney("10.00")},
	})
	require.NoError(t, f.svc.Create(ctx, sale))

	assert.Equal(t, types.NewQuantityFromFloat64(45), f.stock.stock[f.variant.ID])
	assert.True(t, types.MustMoney("50.00").Equal(f.balanceOf(t)))
}

func TestUpdateReplacesItemsAndReconcilesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Purchase 50 units, sell 5: stock 45, owed 50.00.
	f.stock.stock[f.variant.ID] = types.NewQuantityFromFloat64(50)
	sale := NewCreditSale(f.customer.ID, []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(5), PriceAtSale: types.MustMoney("10.00")},
	})
	require.NoError(t, f.svc.Create(ctx, sale))

	// Customer pays some, price changes, then the sale is corrected to
	// 8 units at 7.50. Old 5 come back, new 8 go out: stock 42.
	updated, err := f.svc.Update(ctx, sale.ID, f.customer.ID, []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(8), PriceAtSale: types.MustMoney("7.50")},
	})
	require.NoError(t, err)

	assert.Equal(t, types.NewQuantityFromFloat64(42), f.stock.stock[f.variant.ID])
	assert.True(t, types.MustMoney("60.00").Equal(f.balanceOf(t)), "got %s", f.balanceOf(t))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, types.NewQuantityFromFloat64(8), updated.Items[0].Quantity)
}

func TestUpdateWithSameItemsIsIdempotentOnStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.stock.stock[f.variant.ID] = types.NewQuantityFromFloat64(50)
	items := []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(5), PriceAtSale: types.MustMoney("10.00")},
	}
	sale := NewCreditSale(f.customer.ID, items)
	require.NoError(t, f.svc.Create(ctx, sale))

	// Resubmitting the identical item set reverts 5 and deducts 5.
	_, err := f.svc.Update(ctx, sale.ID, f.customer.ID, []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(5), PriceAtSale: types.MustMoney("10.00")},
	})
	require.NoError(t, err)

	assert.Equal(t, types.NewQuantityFromFloat64(45), f.stock.stock[f.variant.ID])
}

func TestDeleteDoesNotRestoreStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.stock.stock[f.variant.ID] = types.NewQuantityFromFloat64(50)
	sale := NewCreditSale(f.customer.ID, []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(5), PriceAtSale: types.MustMoney("10.00")},
	})
	require.NoError(t, f.svc.Create(ctx, sale))
	require.NoError(t, f.svc.Delete(ctx, sale.ID))

	// The sold quantity stays gone.
	assert.Equal(t, types.NewQuantityFromFloat64(45), f.stock.stock[f.variant.ID])
	_, err := f.svc.GetByID(ctx, sale.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := NewCreditSale(f.customer.ID, nil)
	assert.True(t, apperror.IsValidation(f.svc.Create(ctx, sale)))
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := NewCreditSale(id.New(), []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(1), PriceAtSale: types.MustMoney("10.00")},
	})
	assert.True(t, apperror.IsNotFound(f.svc.Create(ctx, sale)))

	sale = NewCreditSale(f.customer.ID, []Item{
		{VariantID: id.New(), Quantity: types.NewQuantityFromFloat64(1), PriceAtSale: types.MustMoney("10.00")},
	})
	assert.True(t, apperror.IsNotFound(f.svc.Create(ctx, sale)))
	assert.Empty(t, f.stock.stock)
}

func TestUpdateUnknownSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, id.New(), f.customer.ID, []Item{
		{VariantID: f.variant.ID, Quantity: types.NewQuantityFromFloat64(1), PriceAtSale: types.MustMoney("10.00")},
	})
	assert.True(t, apperror.IsNotFound(err))
}
