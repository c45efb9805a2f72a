package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kiranabook/internal/domain/documents/creditsale"
	"kiranabook/internal/infrastructure/http/v1/dto"
)

// SaleHandler serves credit sale documents.
type SaleHandler struct {
	*BaseHandler
	service *creditsale.Service
}

// NewSaleHandler creates a new credit sale handler.
func NewSaleHandler(base *BaseHandler, service *creditsale.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

// List handles GET /sales, newest first, items attached.
func (h *SaleHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c, ""))
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

// Get handles GET /sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParamID(c)
	if !ok {
		return
	}

	sale, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// Create handles POST /sales. Items decrement stock in the same
// transaction; each line captures the price at the counter.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), sale); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// Update handles PUT /sales/:id. The submitted items replace the item
// set wholesale: old items' stock is restored, new items decrement it.
func (h *SaleHandler) Update(c *gin.Context) {
	saleID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.Update(c.Request.Context(), saleID, req.CustomerID, req.ToItems())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// Delete handles DELETE /sales/:id. Items go with the sale; stock is
// not restored.
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), saleID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
