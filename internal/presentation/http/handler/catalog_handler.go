package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles the admin's service catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Add handles adding a service
func (h *CatalogHandler) Add(c *gin.Context) {
	var req request.AddServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	svc, err := h.catalogService.AddService(c.Request.Context(), &service.ServiceInput{
		AdminID: adminID,
		Name:    req.Name,
		Price:   req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service added successfully", svc)
}

// ListActive handles listing active services
func (h *CatalogHandler) ListActive(c *gin.Context) {
	adminID, ok := adminParam(c, "admin_id")
	if !ok {
		return
	}

	services, err := h.catalogService.ListActive(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services retrieved successfully", services)
}

// ListDeleted handles listing removed services
func (h *CatalogHandler) ListDeleted(c *gin.Context) {
	adminID, ok := adminParam(c, "admin_id")
	if !ok {
		return
	}

	services, err := h.catalogService.ListDeleted(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Deleted services retrieved successfully", services)
}

// Remove handles soft-deleting a service
func (h *CatalogHandler) Remove(c *gin.Context) {
	h.changeStatus(c, h.catalogService.RemoveService, "Service removed successfully")
}

// Restore handles bringing a removed service back
func (h *CatalogHandler) Restore(c *gin.Context) {
	h.changeStatus(c, h.catalogService.RestoreService, "Service restored successfully")
}

func (h *CatalogHandler) changeStatus(c *gin.Context, apply func(ctx context.Context, id, adminID int64) error, message string) {
	var req request.ServiceStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	if err := apply(c.Request.Context(), req.ServiceID, adminID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, nil)
}

// Edit handles renaming or repricing a service
func (h *CatalogHandler) Edit(c *gin.Context) {
	var req request.EditServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	svc, err := h.catalogService.EditService(c.Request.Context(), &service.ServiceInput{
		ID:      req.ID,
		AdminID: adminID,
		Name:    req.Name,
		Price:   req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}
