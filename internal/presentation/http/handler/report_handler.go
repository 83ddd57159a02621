package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// ReportHandler handles bill reports and the export feed
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) queryAdmin(c *gin.Context) (int64, bool) {
	var q request.AdminQuery
	if !bindQuery(c, &q) {
		return 0, false
	}
	return resolveAdmin(c, q.AdminID)
}

// Reports handles listing all bills of an admin
func (h *ReportHandler) Reports(c *gin.Context) {
	adminID, ok := h.queryAdmin(c)
	if !ok {
		return
	}

	bills, err := h.reportService.Reports(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reports retrieved successfully", bills)
}

// Customer handles one customer's bill history
func (h *ReportHandler) Customer(c *gin.Context) {
	var q request.CustomerReportQuery
	if !bindQuery(c, &q) {
		return
	}
	adminID, ok := resolveAdmin(c, q.AdminID)
	if !ok {
		return
	}

	history, err := h.reportService.CustomerHistory(c.Request.Context(), adminID, q.Contact)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer history retrieved successfully", history)
}

// WorkHistory handles the chronological work list
func (h *ReportHandler) WorkHistory(c *gin.Context) {
	adminID, ok := h.queryAdmin(c)
	if !ok {
		return
	}

	entries, err := h.reportService.WorkHistory(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work history retrieved successfully", entries)
}

// Export handles the flat bill rows for a date range. POST reads the range
// from the body, GET from the query string.
func (h *ReportHandler) Export(c *gin.Context) {
	var req request.ExportRequest
	var bound bool
	if c.Request.Method == http.MethodPost {
		bound = bindJSON(c, &req)
	} else {
		bound = bindQuery(c, &req)
	}
	if !bound {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	rows, err := h.reportService.ExportRows(c.Request.Context(), adminID, req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Export data retrieved successfully", rows)
}
