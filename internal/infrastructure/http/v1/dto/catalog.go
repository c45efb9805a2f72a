package dto

import (
	"kiranabook/internal/core/id"
	"kiranabook/internal/core/types"
	"kiranabook/internal/domain/catalog/customer"
	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/domain/catalog/supplier"
)

// --- Product ---

// ProductRequest is the body for creating or updating a product.
type ProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category *string `json:"category"`
}

// ToEntity creates a new product from the request.
func (r ProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Name)
	p.Category = r.Category
	return p
}

// ApplyTo writes the request fields onto an existing product.
func (r ProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.Category = r.Category
}

// --- Variant ---

// VariantRequest is the body for creating or updating a variant.
// On update the stock field is ignored; stock moves only through
// purchases and sales.
type VariantRequest struct {
	ProductID id.ID        `json:"productId" binding:"required"`
	Name      string       `json:"name" binding:"required"`
	Price     types.Money  `json:"price"`
	Unit      product.Unit `json:"unit" binding:"required"`
}

// ToEntity creates a new variant from the request.
func (r VariantRequest) ToEntity() *product.Variant {
	return product.NewVariant(r.ProductID, r.Name, r.Price, r.Unit)
}

// ApplyTo writes the request fields onto an existing variant.
func (r VariantRequest) ApplyTo(v *product.Variant) {
	v.ProductID = r.ProductID
	v.Name = r.Name
	v.Price = r.Price
	v.Unit = r.Unit
}

// --- Customer ---

// CustomerRequest is the body for creating or updating a customer.
type CustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Mobile  *string `json:"mobile"`
	Address *string `json:"address"`
}

// ToEntity creates a new customer from the request.
func (r CustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Name)
	c.Mobile = r.Mobile
	c.Address = r.Address
	return c
}

// ApplyTo writes the request fields onto an existing customer.
func (r CustomerRequest) ApplyTo(c *customer.Customer) {
	c.Name = r.Name
	c.Mobile = r.Mobile
	c.Address = r.Address
}

// --- Supplier ---

// SupplierRequest is the body for creating or updating a supplier.
type SupplierRequest struct {
	Name          string  `json:"name" binding:"required"`
	ContactPerson *string `json:"contactPerson"`
	Mobile        *string `json:"mobile"`
	Address       *string `json:"address"`
}

// ToEntity creates a new supplier from the request.
func (r SupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Name)
	s.ContactPerson = r.ContactPerson
	s.Mobile = r.Mobile
	s.Address = r.Address
	return s
}

// ApplyTo writes the request fields onto an existing supplier.
func (r SupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Name = r.Name
	s.ContactPerson = r.ContactPerson
	s.Mobile = r.Mobile
	s.Address = r.Address
}
