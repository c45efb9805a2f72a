package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kiranabook/internal/domain/reports"
)

// ReportsHandler serves the dashboard and the customer ledger view.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Dashboard handles GET /dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CustomerDetail handles GET /customer-detail/:id - the customer with
// their full sale and payment history and derived balance.
func (h *ReportsHandler) CustomerDetail(c *gin.Context) {
	customerID, ok := h.ParamID(c)
	if !ok {
		return
	}

	detail, err := h.service.CustomerDetail(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
