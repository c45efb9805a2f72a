// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"kiranabook/internal/domain/balance"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/catalog/supplier"
	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/domain/documents/payment"
	"kiranabook/internal/domain/documents/purchase"
	"kiranabook/internal/domain/reports"
	"kiranabook/internal/domain/stockledger"
	"kiranabook/internal/infrastructure/http/v1/handlers"
	"kiranabook/internal/infrastructure/http/v1/middleware"
	"kiranabook/internal/infrastructure/storage/postgres"
	"kiranabook/internal/infrastructure/storage/postgres/catalog_repo"
	"kiranabook/internal/infrastructure/storage/postgres/document_repo"
	"kiranabook/internal/infrastructure/storage/postgres/register_repo"
	"kiranabook/internal/infrastructure/storage/postgres/report_repo"
	"kiranabook/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger
}

// NewRouter wires repositories, services and handlers into the Gin
// router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Order matters: recovery first, error rendering last before the
	// handlers run.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	txm := postgres.NewTxManager(cfg.Pool)

	// Repositories
	productRepo := catalog_repo.NewProductRepo(txm)
	variantRepo := catalog_repo.NewVariantRepo(txm)
	customerRepo := catalog_repo.NewCustomerRepo(txm)
	supplierRepo := catalog_repo.NewSupplierRepo(txm)
	stockRepo := register_repo.NewStockRepo(txm)
	purchaseRepo := document_repo.NewPurchaseRepo(txm)
	saleRepo := document_repo.NewCreditSaleRepo(txm)
	paymentRepo := document_repo.NewPaymentRepo(txm)
	reportRepo := report_repo.NewReportRepo(txm)
	balanceRepo := report_repo.NewBalanceRepo(txm)

	// Services
	ledger := stockledger.NewService(stockRepo)
	calculator := balance.NewCalculator(balanceRepo)
	productService := product.NewService(productRepo, variantRepo)
	customerService := customer.NewService(customerRepo)
	supplierService := supplier.NewService(supplierRepo)
	purchaseService := purchase.NewService(purchaseRepo, variantRepo, supplierRepo, ledger, txm)
	saleService := creditsale.NewService(saleRepo, customerRepo, variantRepo, ledger, txm)
	paymentService := payment.NewService(paymentRepo, customerRepo)
	reportsService := reports.NewService(reportRepo, customerRepo, calculator)

	// Handlers
	base := handlers.NewBaseHandler()
	productHandler := handlers.NewProductHandler(base, productService)
	variantHandler := handlers.NewVariantHandler(base, productService)
	customerHandler := handlers.NewCustomerHandler(base, customerService)
	supplierHandler := handlers.NewSupplierHandler(base, supplierService)
	purchaseHandler := handlers.NewPurchaseHandler(base, purchaseService)
	saleHandler := handlers.NewSaleHandler(base, saleService)
	paymentHandler := handlers.NewPaymentHandler(base, paymentService)
	reportsHandler := handlers.NewReportsHandler(base, reportsService)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)

	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/all", productHandler.ListAll)
			products.GET("/:id", productHandler.Get)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		variants := api.Group("/variants")
		{
			variants.GET("", variantHandler.List)
			variants.GET("/:id", variantHandler.Get)
			variants.POST("", variantHandler.Create)
			variants.PUT("/:id", variantHandler.Update)
			variants.DELETE("/:id", variantHandler.Delete)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.GET("/all", customerHandler.ListAll)
			customers.GET("/:id", customerHandler.Get)
			customers.POST("", customerHandler.Create)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.POST("", supplierHandler.Create)
			suppliers.PUT("/:id", supplierHandler.Update)
			suppliers.DELETE("/:id", supplierHandler.Delete)
		}

		purchases := api.Group("/purchases")
		{
			purchases.GET("", purchaseHandler.List)
			purchases.GET("/:id", purchaseHandler.Get)
			purchases.POST("", purchaseHandler.Create)
			purchases.PUT("/:id", purchaseHandler.Update)
			purchases.DELETE("/:id", purchaseHandler.Delete)
		}

		sales := api.Group("/sales")
		{
			sales.GET("", saleHandler.List)
			sales.GET("/:id", saleHandler.Get)
			sales.POST("", saleHandler.Create)
			sales.PUT("/:id", saleHandler.Update)
			sales.DELETE("/:id", saleHandler.Delete)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.GET("/:id", paymentHandler.Get)
			payments.POST("", paymentHandler.Create)
			payments.PUT("/:id", paymentHandler.Update)
			payments.DELETE("/:id", paymentHandler.Delete)
		}

		api.GET("/dashboard", reportsHandler.Dashboard)
		api.GET("/customer-detail/:id", reportsHandler.CustomerDetail)
	}

	return router
}
