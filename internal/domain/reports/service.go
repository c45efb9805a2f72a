package reports

import (
	"context"
	"fmt"

	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/domain/balance"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/domain/documents/payment"
)

const dashboardTopN = 3

// Repository provides the read queries behind the reports.
type Repository interface {
	// LowStockVariants returns variants ascending by current_stock,
	// ties broken by id (UUIDv7 = insertion order).
	LowStockVariants(ctx context.Context, limit int) ([]product.Variant, error)

	// CustomerBalances returns every customer with their derived
	// balance, ordered by balance descending.
	CustomerBalances(ctx context.Context) ([]CustomerBalance, error)

	CountVariants(ctx context.Context) (int64, error)

	// SalesByCustomer returns the customer's sales newest first,
	// items attached.
	SalesByCustomer(ctx context.Context, customerID id.ID) ([]*creditsale.CreditSale, error)

	// PaymentsByCustomer returns the customer's payments newest first.
	PaymentsByCustomer(ctx context.Context, customerID id.ID) ([]*payment.Payment, error)
}

// Service composes dashboard and customer-detail views.
type Service struct {
	repo       Repository
	customers  customer.Repository
	calculator *balance.Calculator
}

// NewService creates a new reports service.
func NewService(repo Repository, customers customer.Repository, calculator *balance.Calculator) *Service {
	return &Service{
		repo:       repo,
		customers:  customers,
		calculator: calculator,
	}
}

// Dashboard builds the storefront summary.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	lowStock, err := s.repo.LowStockVariants(ctx, dashboardTopN)
	if err != nil {
		return nil, fmt.Errorf("low stock variants: %w", err)
	}

	balances, err := s.repo.CustomerBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("customer balances: %w", err)
	}

	total := types.ZeroMoney()
	for _, b := range balances {
		total = total.Add(b.Balance)
	}

	top := balances
	if len(top) > dashboardTopN {
		top = top[:dashboardTopN]
	}

	variantCount, err := s.repo.CountVariants(ctx)
	if err != nil {
		return nil, fmt.Errorf("count variants: %w", err)
	}

	customerCount, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	return &DashboardStats{
		LowStockItems:          lowStock,
		TopCustomersByCredit:   top,
		TotalOutstandingCredit: total,
		TotalProductVariants:   variantCount,
		TotalCustomers:         customerCount,
	}, nil
}

// CustomerDetail builds a customer's account page: sales and payments
// newest first, plus the derived balance. Returns NOT_FOUND for an
// unknown customer id.
func (s *Service) CustomerDetail(ctx context.Context, customerID id.ID) (*CustomerDetail, error) {
	cust, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	sales, err := s.repo.SalesByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("sales by customer: %w", err)
	}

	payments, err := s.repo.PaymentsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("payments by customer: %w", err)
	}

	bal, err := s.calculator.ForCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}

	return &CustomerDetail{
		Customer: cust,
		Sales:    sales,
		Payments: payments,
		Balance:  bal,
	}, nil
}
