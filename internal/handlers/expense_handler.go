package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles GET /api/v1/projects/:id/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	expenses, err := h.expenseService.List(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to retrieve expenses")
		return
	}

	responses.Success(c, http.StatusOK, expenses, "Expenses retrieved successfully")
}

// Summary handles GET /api/v1/projects/:id/expenses/summary
func (h *ExpenseHandler) Summary(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	summary, err := h.expenseService.Summary(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to summarize expenses")
		return
	}

	responses.Success(c, http.StatusOK, summary, "Expense summary retrieved successfully")
}

// Create handles POST /api/v1/projects/:id/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	var req services.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid amount or date format")
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), userID, projectID, req)
	if err != nil {
		fail(c, err, "Failed to create expense")
		return
	}

	responses.Success(c, http.StatusCreated, expense, "Expense created successfully")
}

// Update handles PUT /api/v1/expenses/:expense_id
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, expenseID, ok := scope(c, "expense_id", "Expense")
	if !ok {
		return
	}

	var req services.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid amount or date format")
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), userID, expenseID, req)
	if err != nil {
		fail(c, err, "Failed to update expense")
		return
	}

	responses.Success(c, http.StatusOK, expense, "Expense updated successfully")
}

// Delete handles DELETE /api/v1/expenses/:expense_id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, expenseID, ok := scope(c, "expense_id", "Expense")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), userID, expenseID); err != nil {
		fail(c, err, "Failed to delete expense")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Expense deleted successfully")
}
