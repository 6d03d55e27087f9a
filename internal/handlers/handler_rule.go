package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ruleHandler handles HTTP requests related to approval rules.
type ruleHandler struct {
	ruleService portssvc.RuleSvcFacade
}

func newRuleHandler(rs portssvc.RuleSvcFacade) *ruleHandler {
	return &ruleHandler{ruleService: rs}
}

// registerRuleRoutes registers all rule-related routes. All of them are
// admin-only, enforced in the service layer.
func registerRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.RuleSvcFacade) {
	h := newRuleHandler(ruleService)

	rules := rg.Group("/rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.GET("/:id", h.getRule)
		rules.PUT("/:id", h.updateRule)
	}
}

// createRule godoc
// @Summary Create an approval rule
// @Description Creates a new approval rule for the requester's company. Admin only.
// @Tags rules
// @Accept json
// @Produce json
// @Param rule body dto.CreateRuleRequest true "Rule details"
// @Success 201 {object} dto.RuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules [post]
func (h *ruleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create rule request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), req, requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "create rule")
		return
	}

	logger.Info("Rule created", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusCreated, dto.ToRuleResponse(rule))
}

// listRules godoc
// @Summary List approval rules
// @Description Lists all approval rules of the requester's company. Admin only.
// @Tags rules
// @Produce json
// @Success 200 {array} dto.RuleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules [get]
func (h *ruleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rules, err := h.ruleService.ListRules(c.Request.Context(), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "list rules")
		return
	}
	c.JSON(http.StatusOK, dto.ToRuleResponses(rules))
}

// getRule godoc
// @Summary Get an approval rule by ID
// @Tags rules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} dto.RuleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{id} [get]
func (h *ruleHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rule, err := h.ruleService.GetRuleByID(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "get rule")
		return
	}
	c.JSON(http.StatusOK, dto.ToRuleResponse(rule))
}

// updateRule godoc
// @Summary Update an approval rule
// @Description Updates an approval rule. Admin only. A nil steps field keeps the existing step list.
// @Tags rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateRuleRequest true "Fields to update"
// @Success 200 {object} dto.RuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{id} [put]
func (h *ruleHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for update rule request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "update rule")
		return
	}

	logger.Info("Rule updated", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusOK, dto.ToRuleResponse(rule))
}
