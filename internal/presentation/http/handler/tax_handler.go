package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// TaxHandler handles the per-admin tax settings
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// Get handles reading the tax settings, falling back to defaults
func (h *TaxHandler) Get(c *gin.Context) {
	adminID, ok := adminParam(c, "adminId")
	if !ok {
		return
	}

	settings, err := h.taxService.GetTaxDetails(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax details retrieved successfully", settings)
}

// Save handles replacing the tax settings
func (h *TaxHandler) Save(c *gin.Context) {
	var req request.SaveTaxDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	settings, err := h.taxService.SaveTaxDetails(c.Request.Context(), &service.SaveTaxDetailsInput{
		AdminID:       adminID,
		TaxType:       req.TaxType,
		TaxNumber:     req.TaxNumber,
		TaxRate:       req.TaxRate,
		ShowTaxRate:   req.ShowTaxRate,
		ShowTaxNumber: req.ShowTaxNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax details saved successfully", settings)
}
