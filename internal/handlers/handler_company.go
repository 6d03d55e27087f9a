package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests for companies and their expense categories.
type companyHandler struct {
	companyService  portssvc.CompanySvcFacade
	categoryService portssvc.CategorySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade, cats portssvc.CategorySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs, categoryService: cats}
}

// registerCompanyRoutes registers company and category routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade, categoryService portssvc.CategorySvcFacade) {
	h := newCompanyHandler(companyService, categoryService)

	companies := rg.Group("/companies")
	{
		companies.GET("/:id", h.getCompany)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
	}
}

// getCompany godoc
// @Summary Get a company by ID
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUserID(c, logger); !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "get company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// createCategory godoc
// @Summary Create an expense category
// @Description Creates a new expense category in the requester's company. Managers and admins only.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *companyHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create category request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "create category")
		return
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List expense categories
// @Description Lists the active expense categories of the requester's company.
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *companyHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}
