package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kiranabook/internal/domain/catalog/product"
	"kiranabook/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves products and their variants.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c, "name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// ListAll handles GET /products/all - full list for dropdowns.
func (h *ProductHandler) ListAll(c *gin.Context) {
	products, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParamID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(existing)
	if err := h.service.Update(c.Request.Context(), existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

// Delete handles DELETE /products/:id. Variants go with the product;
// the delete is refused while any variant appears in a purchase or
// sale.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// VariantHandler serves product variants as their own resource.
type VariantHandler struct {
	*BaseHandler
	service *product.Service
}

// NewVariantHandler creates a new variant handler.
func NewVariantHandler(base *BaseHandler, service *product.Service) *VariantHandler {
	return &VariantHandler{BaseHandler: base, service: service}
}

// List handles GET /variants.
func (h *VariantHandler) List(c *gin.Context) {
	result, err := h.service.ListVariants(c.Request.Context(), h.ListFilter(c, "name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /variants/:id.
func (h *VariantHandler) Get(c *gin.Context) {
	variantID, ok := h.ParamID(c)
	if !ok {
		return
	}

	v, err := h.service.GetVariant(c.Request.Context(), variantID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// Create handles POST /variants.
func (h *VariantHandler) Create(c *gin.Context) {
	var req dto.VariantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	v := req.ToEntity()
	if err := h.service.CreateVariant(c.Request.Context(), v); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, v)
}

// Update handles PUT /variants/:id. Stock cannot be edited here; it
// moves only through purchases and sales.
func (h *VariantHandler) Update(c *gin.Context) {
	variantID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req dto.VariantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetVariant(c.Request.Context(), variantID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(existing)
	if err := h.service.UpdateVariant(c.Request.Context(), existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

// Delete handles DELETE /variants/:id. Refused while the variant is
// referenced by purchases or sale items.
func (h *VariantHandler) Delete(c *gin.Context) {
	variantID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVariant(c.Request.Context(), variantID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
