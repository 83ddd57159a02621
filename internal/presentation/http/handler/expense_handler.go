package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Add handles recording an expense
func (h *ExpenseHandler) Add(c *gin.Context) {
	var req request.AddExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), &service.AddExpenseInput{
		AdminID:       adminID,
		PayeeName:     req.PayeeName,
		ExpenseName:   req.ExpenseName,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		Description:   req.Description,
		Date:          req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense added successfully", expense)
}

// List handles listing expenses, optionally within a date range
func (h *ExpenseHandler) List(c *gin.Context) {
	var q request.DateRangeQuery
	if !bindQuery(c, &q) {
		return
	}
	adminID, ok := resolveAdmin(c, q.AdminID)
	if !ok {
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), adminID, q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expenses retrieved successfully", expenses)
}

// Categories handles listing the suggested expense categories
func (h *ExpenseHandler) Categories(c *gin.Context) {
	response.OK(c, "Expense categories retrieved successfully", h.expenseService.Categories())
}

// Rename handles changing an expense's name
func (h *ExpenseHandler) Rename(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req request.RenameExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	adminID, ok := resolveAdmin(c, req.AdminID)
	if !ok {
		return
	}

	expense, err := h.expenseService.RenameExpense(c.Request.Context(), id, adminID, req.ExpenseName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense. The owner comes from the token or the
// adminId query parameter.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var q request.DateRangeQuery
	if !bindQuery(c, &q) {
		return
	}
	adminID, ok := resolveAdmin(c, q.AdminID)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id, adminID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}
