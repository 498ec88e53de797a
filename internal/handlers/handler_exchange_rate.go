package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/dto"
	"github.com/SscSPs/tax_compare_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("/:from", h.listExchangeRates)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
	}
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Retrieves every rate quoted against a base currency
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "Base Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 502 {object} map[string]string "Exchange rates unavailable"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rates"
// @Router /api/v1/exchange-rates/{from} [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	fromCode := c.Param("from")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("from_code", fromCode))

	rates, err := h.exchangeRateService.GetExchangeRates(c.Request.Context(), fromCode)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exchange rates")
		return
	}

	sorted := lo.Values(rates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ToCurrencyCode < sorted[j].ToCurrencyCode })

	base := fromCode
	if len(sorted) > 0 {
		base = sorted[0].FromCurrencyCode
	}
	c.JSON(http.StatusOK, dto.ListExchangeRatesResponse{
		BaseCurrencyCode: base,
		Rates:            dto.ToListExchangeRateResponse(sorted),
	})
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the latest exchange rate for a given currency pair
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 502 {object} map[string]string "Exchange rates unavailable"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /api/v1/exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	fromCode := c.Param("from")
	toCode := c.Param("to")

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("from_code", fromCode), slog.String("to_code", toCode))
	logger.Info("Received request to get exchange rate")

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
