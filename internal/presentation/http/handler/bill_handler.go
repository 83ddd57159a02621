package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService    *service.BillService
	catalogService *service.CatalogService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, catalogService *service.CatalogService) *BillHandler {
	return &BillHandler{billService: billService, catalogService: catalogService}
}

// Create handles bill creation
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	input := &service.CreateBillInput{
		AdminID:       adminID,
		CustomerName:  req.CustomerName,
		Contact:       req.Contact,
		ServiceTaken:  request.LineItems(req.ServiceTaken),
		OtherCharges:  req.OtherCharges,
		Discount:      req.Discount,
		Received:      req.Received,
		TotalBill:     req.TotalBill,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
	}
	if req.TaxDetails != nil {
		input.TaxDetails = &service.TaxDetailsInput{
			WasTaxApplied: req.TaxDetails.WasTaxApplied,
			TaxRate:       req.TaxDetails.TaxRate,
		}
	}

	result, err := h.billService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", result)
}

// Get handles getting a bill by ID
func (h *BillHandler) Get(c *gin.Context) {
	billID, ok := idParam(c, "bill_id")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	// a token only sees its own bills
	if authID, ok := middleware.AuthenticatedAdmin(c); ok && bill.AdminID != authID {
		response.NotFound(c, "Bill not found")
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Update handles rewriting a bill's details
func (h *BillHandler) Update(c *gin.Context) {
	billID, ok := idParam(c, "bill_id")
	if !ok {
		return
	}
	var req request.UpdateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), &service.UpdateBillInput{
		BillID:        billID,
		AdminID:       adminID,
		CustomerName:  req.CustomerName,
		Contact:       req.Contact,
		ServiceTaken:  request.LineItems(req.ServiceTaken),
		OtherCharges:  req.OtherCharges,
		Discount:      req.Discount,
		TotalBill:     req.TotalBill,
		TaxRate:       req.TaxRate,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// UpdatePayment handles overwriting received and balance
func (h *BillHandler) UpdatePayment(c *gin.Context) {
	billID, ok := idParam(c, "bill_id")
	if !ok {
		return
	}
	var req request.UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	err := h.billService.ApplyPayment(c.Request.Context(), &service.ApplyPaymentInput{
		BillID:   billID,
		AdminID:  adminID,
		Received: req.Received,
		Balance:  req.Balance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", nil)
}

// Delete handles deleting a bill
func (h *BillHandler) Delete(c *gin.Context) {
	billID, ok := idParam(c, "bill_id")
	if !ok {
		return
	}
	var req request.DeleteBillRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), billID, adminID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", nil)
}

// RenameCustomer handles rewriting a customer's name and contact on all
// their bills
func (h *BillHandler) RenameCustomer(c *gin.Context) {
	var req request.RenameCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	updated, err := h.billService.RenameCustomer(c.Request.Context(), &service.RenameCustomerInput{
		AdminID:      adminID,
		OldContact:   req.OldContact,
		NewContact:   req.NewContact,
		CustomerName: req.CustomerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer details updated successfully", gin.H{"updated_bills": updated})
}

// ListByAdmin handles listing an admin's bills page by page
func (h *BillHandler) ListByAdmin(c *gin.Context) {
	adminID, ok := adminParam(c, "admin_id")
	if !ok {
		return
	}
	var req request.ListBillsRequest
	if !bindQuery(c, &req) {
		return
	}

	result, err := h.billService.ListBills(c.Request.Context(), adminID, &pagination.PaginationParams{
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Bills retrieved successfully", result)
}

// PendingBalances handles listing bills with an outstanding balance
func (h *BillHandler) PendingBalances(c *gin.Context) {
	adminID, ok := adminParam(c, "admin_id")
	if !ok {
		return
	}

	pending, err := h.billService.PendingBalances(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending balances retrieved successfully", pending)
}

// PreviousCustomers handles listing the customers an admin has billed
func (h *BillHandler) PreviousCustomers(c *gin.Context) {
	adminID, ok := adminParam(c, "admin_id")
	if !ok {
		return
	}

	customers, err := h.billService.PreviousCustomers(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", customers)
}

// ActiveServices handles listing the catalog services offered on new bills
func (h *BillHandler) ActiveServices(c *gin.Context) {
	adminID, ok := adminParam(c, "admin_id")
	if !ok {
		return
	}

	services, err := h.catalogService.ListActive(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active services retrieved successfully", services)
}
