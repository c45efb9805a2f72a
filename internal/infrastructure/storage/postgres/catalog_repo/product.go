package catalog_repo

import (
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

// ProductRepo implements product.Repository. Variants live in their own
// table and are attached by the service layer.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			productsTable,
			postgres.ExtractDBColumns[product.Product](),
			[]string{"name", "category"},
			func() *product.Product { return &product.Product{} },
		),
	}
}
