package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/dto"
	"github.com/SscSPs/tax_compare_app/internal/middleware"
	"github.com/SscSPs/tax_compare_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// taxComparisonHandler handles HTTP requests comparing country tax schedules.
type taxComparisonHandler struct {
	comparisonService portssvc.TaxComparisonSvc
	posthogClient     *utils.PosthogClientWrapper
}

func newTaxComparisonHandler(svc portssvc.TaxComparisonSvc, posthogClient *utils.PosthogClientWrapper) *taxComparisonHandler {
	return &taxComparisonHandler{
		comparisonService: svc,
		posthogClient:     posthogClient,
	}
}

// registerTaxComparisonRoutes registers the comparison endpoint on rg and the
// legacy /process path on the engine root.
func registerTaxComparisonRoutes(r *gin.Engine, rg *gin.RouterGroup, svc portssvc.TaxComparisonSvc, posthogClient *utils.PosthogClientWrapper, extra ...gin.HandlerFunc) {
	h := newTaxComparisonHandler(svc, posthogClient)

	rg.POST("/taxes/compare", h.compareTaxes)
	r.POST("/process", append(slices.Clone(extra), h.compareTaxes)...)
}

// compareTaxes godoc
// @Summary Compare income tax across countries
// @Description Samples tax amount and effective rate for every requested country up to max_income,
// @Description evaluates an optional specific income and optionally finds breakeven incomes per country pair.
// @Tags taxes
// @Accept  json
// @Produce  json
// @Param   request body dto.TaxComparisonRequest true "Comparison parameters"
// @Success 200 {object} dto.TaxComparisonResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} map[string]string "Exchange rates unavailable"
// @Failure 500 {object} map[string]string "Failed to compare taxes"
// @Router /api/v1/taxes/compare [post]
// @Router /process [post]
func (h *taxComparisonHandler) compareTaxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TaxComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CompareTaxes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received tax comparison request",
		slog.Any("countries", req.Countries),
		slog.Float64("max_income", req.MaxIncome),
		slog.Bool("show_break_even", req.ShowBreakEven),
	)

	resp, err := h.comparisonService.CompareTaxes(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compare taxes")
		return
	}

	props := map[string]any{
		"countries":       req.Countries,
		"show_break_even": req.ShowBreakEven,
		"has_income":      req.Income != nil,
		"error_count":     len(resp.Errors),
	}
	if req.NormalizingCurrency != nil {
		props["normalizing_currency"] = *req.NormalizingCurrency
	}
	middleware.PosthogEvent(c, h.posthogClient, "tax_comparison", props)

	logger.Info("Tax comparison completed",
		slog.Int("countries", len(resp.CountrySpecificData)),
		slog.Int("errors", len(resp.Errors)),
	)
	c.JSON(http.StatusOK, resp)
}
