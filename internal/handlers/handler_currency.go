package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler exposes the country/currency directory and ad-hoc
// conversions backed by the external rate provider.
type currencyHandler struct {
	conversionService portssvc.ConversionSvcFacade
	countrySource     portssvc.CountrySource
}

func newCurrencyHandler(cs portssvc.ConversionSvcFacade, countries portssvc.CountrySource) *currencyHandler {
	return &currencyHandler{conversionService: cs, countrySource: countries}
}

// registerCurrencyRoutes registers currency-related routes.
func registerCurrencyRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade, countries portssvc.CountrySource) {
	h := newCurrencyHandler(conversionService, countries)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("/countries", h.listCountries)
		currencies.POST("/convert", h.convert)
	}
}

// listCountries godoc
// @Summary List countries and their currencies
// @Description Returns the country/currency directory from the external provider. Used by signup to pick a company currency.
// @Tags currencies
// @Produce json
// @Success 200 {array} portssvc.Country
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/countries [get]
func (h *currencyHandler) listCountries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUserID(c, logger); !ok {
		return
	}

	countries, err := h.countrySource.ListCountries(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "list countries")
		return
	}
	c.JSON(http.StatusOK, countries)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Tags currencies
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/convert [post]
func (h *currencyHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUserID(c, logger); !ok {
		return
	}

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for convert request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.conversionService.Convert(c.Request.Context(), req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		respondServiceError(c, logger, err, "convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		OriginalAmount:  req.Amount,
		FromCurrency:    req.FromCurrency,
		ConvertedAmount: result.Amount,
		ToCurrency:      req.ToCurrency,
		ExchangeRate:    result.Rate,
	})
}
