package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approvalHandler handles HTTP requests related to approval records.
type approvalHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

func newApprovalHandler(ws portssvc.WorkflowSvcFacade) *approvalHandler {
	return &approvalHandler{workflowService: ws}
}

// registerApprovalRoutes registers all approval-related routes.
func registerApprovalRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newApprovalHandler(workflowService)

	approvals := rg.Group("/approvals")
	{
		approvals.GET("", h.listMyApprovals)
		approvals.POST("/:id/decide", h.decideApproval)
	}
}

// listMyApprovals godoc
// @Summary List the requester's approval records
// @Description Lists approval records assigned to the requester. Pass pending=true to restrict to undecided ones.
// @Tags approvals
// @Produce json
// @Param pending query bool false "Only pending approvals"
// @Success 200 {array} dto.ApprovalResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals [get]
func (h *approvalHandler) listMyApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	onlyPending, _ := strconv.ParseBool(c.DefaultQuery("pending", "false"))

	approvals, err := h.workflowService.ListApprovalsForApprover(c.Request.Context(), requesterID, onlyPending)
	if err != nil {
		respondServiceError(c, logger, err, "list approvals")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponses(approvals))
}

// decideApproval godoc
// @Summary Decide a pending approval
// @Description Records the requester's approve/reject decision and synchronously resolves the expense where the votes allow it.
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Approval ID"
// @Param decision body dto.DecideApprovalRequest true "Decision"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals/{id}/decide [post]
func (h *approvalHandler) decideApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.DecideApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for decide approval request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	approval, err := h.workflowService.DecideApproval(c.Request.Context(), c.Param("id"), requesterID, req)
	if err != nil {
		respondServiceError(c, logger, err, "decide approval")
		return
	}

	logger.Info("Approval decided",
		slog.String("approval_id", approval.ApprovalID),
		slog.String("status", string(approval.Status)))
	c.JSON(http.StatusOK, dto.ToApprovalResponse(approval))
}
