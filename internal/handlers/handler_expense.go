package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers all expense-related routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/pending-approval", h.listPendingApproval)
		expenses.GET("/:id", h.getExpense)
		expenses.POST("/:id/submit", h.submitExpense)
		expenses.POST("/:id/cancel", h.cancelExpense)
		expenses.POST("/:id/receipt", h.attachReceipt)
	}
}

// createExpense godoc
// @Summary Create a draft expense
// @Description Creates a new expense in draft status for the requester.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create expense request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "create expense")
		return
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses visible to the requester: own expenses for employees, the team's for managers, the whole company's for admins.
// @Tags expenses
// @Produce json
// @Success 200 {array} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

// listPendingApproval godoc
// @Summary List expenses awaiting the requester's approval
// @Tags expenses
// @Produce json
// @Success 200 {array} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/pending-approval [get]
func (h *expenseHandler) listPendingApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expenses, err := h.expenseService.ListPendingApprovalExpenses(c.Request.Context(), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "list pending approvals")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "get expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// submitExpense godoc
// @Summary Submit a draft expense for approval
// @Description Normalizes the amount into the company currency and builds the approval chain. Fails without state change when the rate provider is unavailable.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id}/submit [post]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.SubmitExpense(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "submit expense")
		return
	}

	logger.Info("Expense submitted", slog.String("expense_id", expense.ExpenseID), slog.String("status", string(expense.Status)))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// cancelExpense godoc
// @Summary Cancel an expense
// @Description Cancels a non-terminal expense owned by the requester.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id}/cancel [post]
func (h *expenseHandler) cancelExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.CancelExpense(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "cancel expense")
		return
	}

	logger.Info("Expense cancelled", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// attachReceipt godoc
// @Summary Attach a receipt image to a draft expense
// @Description Stores the receipt path and enriches the expense with OCR-extracted text where possible.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param receipt body dto.AttachReceiptRequest true "Receipt image path"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id}/receipt [post]
func (h *expenseHandler) attachReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.AttachReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for attach receipt request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.AttachReceipt(c.Request.Context(), c.Param("id"), requesterID, req.ImagePath)
	if err != nil {
		respondServiceError(c, logger, err, "attach receipt")
		return
	}

	logger.Info("Receipt attached", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
