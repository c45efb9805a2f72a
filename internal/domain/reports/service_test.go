package reports

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
	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/domain/documents/payment"
)

// --- Mocks ---

type reportRepo struct {
	lowStock     []product.Variant
	balances     []CustomerBalance
	variantCount int64
	sales        []*creditsale.CreditSale
	payments     []*payment.Payment
}

func (m *reportRepo) LowStockVariants(ctx context.Context, limit int) ([]product.Variant, error) {
	if len(m.lowStock) > limit {
		return m.lowStock[:limit], nil
	}
	return m.lowStock, nil
}

func (m *reportRepo) CustomerBalances(ctx context.Context) ([]CustomerBalance, error) {
	return m.balances, nil
}

func (m *reportRepo) CountVariants(ctx context.Context) (int64, error) {
	return m.variantCount, nil
}

func (m *reportRepo) SalesByCustomer(ctx context.Context, customerID id.ID) ([]*creditsale.CreditSale, error) {
	return m.sales, nil
}

func (m *reportRepo) PaymentsByCustomer(ctx context.Context, customerID id.ID) ([]*payment.Payment, error) {
	return m.payments, nil
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

type balanceRepo struct {
	lines    []balance.SaleLine
	payments []types.Money
}

func (m *balanceRepo) SaleLines(ctx context.Context, customerID id.ID) ([]balance.SaleLine, error) {
	return m.lines, nil
}

func (m *balanceRepo) PaymentAmounts(ctx context.Context, customerID id.ID) ([]types.Money, error) {
	return m.payments, nil
}

// --- Tests ---

func TestDashboardTotalsAndTopThree(t *testing.T) {
	repo := &reportRepo{
		balances: []CustomerBalance{
			{CustomerID: id.New(), Name: "A", Balance: types.MustMoney("400.00")},
			{CustomerID: id.New(), Name: "B", Balance: types.MustMoney("300.00")},
			{CustomerID: id.New(), Name: "C", Balance: types.MustMoney("200.00")},
			{CustomerID: id.New(), Name: "D", Balance: types.MustMoney("-50.00")},
		},
		variantCount: 7,
	}
	customers := &customerRepo{rows: map[id.ID]*customer.Customer{
		id.New(): customer.NewCustomer("A"),
		id.New(): customer.NewCustomer("B"),
	}}

	svc := NewService(repo, customers, balance.NewCalculator(&balanceRepo{}))
	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	// Total is the sum over ALL customers, negatives included, while
	// the top list cuts off at three.
	assert.True(t, types.MustMoney("850.00").Equal(stats.TotalOutstandingCredit), "got %s", stats.TotalOutstandingCredit)
	require.Len(t, stats.TopCustomersByCredit, 3)
	assert.Equal(t, "A", stats.TopCustomersByCredit[0].Name)
	assert.Equal(t, "C", stats.TopCustomersByCredit[2].Name)
	assert.Equal(t, int64(7), stats.TotalProductVariants)
	assert.Equal(t, int64(2), stats.TotalCustomers)
}

func TestDashboardEmpty(t *testing.T) {
	svc := NewService(&reportRepo{}, &customerRepo{rows: map[id.ID]*customer.Customer{}}, balance.NewCalculator(&balanceRepo{}))

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.TotalOutstandingCredit.IsZero())
	assert.Empty(t, stats.TopCustomersByCredit)
	assert.Empty(t, stats.LowStockItems)
}

func TestCustomerDetail(t *testing.T) {
	cust := customer.NewCustomer("Ramesh")
	customers := &customerRepo{rows: map[id.ID]*customer.Customer{cust.ID: cust}}

	repo := &reportRepo{
		sales:    []*creditsale.CreditSale{creditsale.NewCreditSale(cust.ID, nil)},
		payments: []*payment.Payment{payment.NewPayment(cust.ID, types.MustMoney("20.00"))},
	}
	balances := &balanceRepo{
		lines: []balance.SaleLine{
			{Quantity: types.NewQuantityFromFloat64(5), PriceAtSale: types.MustMoney("10.00")},
		},
		payments: []types.Money{types.MustMoney("20.00")},
	}

	svc := NewService(repo, customers, balance.NewCalculator(balances))
	detail, err := svc.CustomerDetail(context.Background(), cust.ID)
	require.NoError(t, err)

	assert.Equal(t, cust, detail.Customer)
	assert.Len(t, detail.Sales, 1)
	assert.Len(t, detail.Payments, 1)
	assert.True(t, types.MustMoney("30.00").Equal(detail.Balance), "got %s", detail.Balance)
}

func TestCustomerDetailUnknownCustomer(t *testing.T) {
	svc := NewService(&reportRepo{}, &customerRepo{rows: map[id.ID]*customer.Customer{}}, balance.NewCalculator(&balanceRepo{}))

	_, err := svc.CustomerDetail(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}
