// Package reports provides read-only composition of catalog, ledger and
// balance data for display.
package reports

import (
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/domain/documents/payment"
)

// CustomerBalance is a customer name with their derived balance.
type CustomerBalance struct {
	CustomerID id.ID       `db:"customer_id" json:"customerId"`
	Name       string      `db:"name" json:"name"`
	Balance    types.Money `db:"balance" json:"balance"`
}

// DashboardStats is the storefront summary.
type DashboardStats struct {
	// LowStockItems are the three variants with the least stock,
	// ascending; ties resolve in insertion (id) order.
	LowStockItems []product.Variant `json:"low_stock_items"`

	// TopCustomersByCredit are the three customers owing the most.
	TopCustomersByCredit []CustomerBalance `json:"top_customers_by_credit"`

	// TotalOutstandingCredit is the sum of every customer's balance.
	TotalOutstandingCredit types.Money `json:"total_outstanding_credit"`

	TotalProductVariants int64 `json:"total_product_variants"`
	TotalCustomers       int64 `json:"total_customers"`
}

// CustomerDetail is everything shown on a customer's account page.
type CustomerDetail struct {
	Customer *customer.Customer       `json:"customer"`
	Sales    []*creditsale.CreditSale `json:"sales"`
	Payments []*payment.Payment       `json:"payments"`
	Balance  types.Money              `json:"balance"`
}
