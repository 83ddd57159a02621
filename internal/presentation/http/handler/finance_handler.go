package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// FinanceHandler handles profit and finance summary requests
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

func (h *FinanceHandler) bindRange(c *gin.Context) (*request.DateRangeQuery, bool) {
	var q request.DateRangeQuery
	if !bindQuery(c, &q) {
		return nil, false
	}
	adminID, ok := resolveAdmin(c, q.AdminID)
	if !ok {
		return nil, false
	}
	q.AdminID = adminID
	return &q, true
}

// Profit handles the income/expense/profit totals for a date range
func (h *FinanceHandler) Profit(c *gin.Context) {
	q, ok := h.bindRange(c)
	if !ok {
		return
	}

	result, err := h.financeService.Profit(c.Request.Context(), q.AdminID, q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profit calculated successfully", result)
}

// Summary handles the detailed finance summary for a date range
func (h *FinanceHandler) Summary(c *gin.Context) {
	q, ok := h.bindRange(c)
	if !ok {
		return
	}

	summary, err := h.financeService.Summary(c.Request.Context(), q.AdminID, q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Finance summary retrieved successfully", summary)
}
