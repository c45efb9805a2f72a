package catalog_repo

import (
	"kiranabook/internal/domain/catalog/supplier"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const suppliersTable = "suppliers"

// SupplierRepo implements supplier.Repository. Deleting a supplier
// keeps its purchases; the schema sets their supplier_id to NULL.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			suppliersTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			[]string{"name", "contact_person", "mobile"},
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}
