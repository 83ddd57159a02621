package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles getting the earnings dashboard of an admin
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	adminID, ok := adminParam(c, "admin_id")
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard data retrieved successfully", summary)
}
