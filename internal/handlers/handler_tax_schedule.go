package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/dto"
	"github.com/SscSPs/tax_compare_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxScheduleHandler handles HTTP requests for reference bracket data.
type taxScheduleHandler struct {
	scheduleService portssvc.TaxScheduleSvcFacade
}

func newTaxScheduleHandler(svc portssvc.TaxScheduleSvcFacade) *taxScheduleHandler {
	return &taxScheduleHandler{scheduleService: svc}
}

// registerTaxScheduleRoutes registers the public read routes on rg and the
// schedule upsert on admin.
func registerTaxScheduleRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, svc portssvc.TaxScheduleSvcFacade) {
	h := newTaxScheduleHandler(svc)

	countries := rg.Group("/countries")
	{
		countries.GET("", h.listCountries)
		countries.GET("/:country/schedule", h.getTaxSchedule)
	}

	admin.PUT("/countries/:country/schedule", h.saveTaxSchedule)
}

// listCountries godoc
// @Summary List countries
// @Description Lists every country available for comparison with its local currency
// @Tags countries
// @Produce  json
// @Success 200 {object} dto.ListCountriesResponse
// @Failure 500 {object} map[string]string "Failed to list countries"
// @Router /api/v1/countries [get]
func (h *taxScheduleHandler) listCountries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	schedules, err := h.scheduleService.ListTaxSchedules(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list countries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCountriesResponse(schedules))
}

// getTaxSchedule godoc
// @Summary Get a country's tax schedule
// @Description Retrieves the bracket schedule of a country in its local currency
// @Tags countries
// @Produce  json
// @Param   country path string true "Country name"
// @Success 200 {object} dto.TaxScheduleResponse
// @Failure 404 {object} map[string]string "Country not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax schedule"
// @Router /api/v1/countries/{country}/schedule [get]
func (h *taxScheduleHandler) getTaxSchedule(c *gin.Context) {
	country := strings.TrimSpace(c.Param("country"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("country", country))

	schedule, err := h.scheduleService.GetTaxSchedule(c.Request.Context(), country)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve tax schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxScheduleResponse(schedule))
}

// saveTaxSchedule godoc
// @Summary Create or replace a country's tax schedule
// @Description Validates and stores the bracket schedule of a country (admin operation)
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   country path string true "Country name"
// @Param   schedule body dto.SaveTaxScheduleRequest true "Currency and brackets"
// @Success 200 {object} dto.TaxScheduleResponse
// @Failure 400 {object} map[string]string "Invalid schedule"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save tax schedule"
// @Security BearerAuth
// @Router /api/v1/admin/countries/{country}/schedule [put]
func (h *taxScheduleHandler) saveTaxSchedule(c *gin.Context) {
	country := strings.TrimSpace(c.Param("country"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("country", country))

	var req dto.SaveTaxScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveTaxSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to save tax schedule", slog.Int("brackets", len(req.Schedule)))

	saved, err := h.scheduleService.SaveTaxSchedule(c.Request.Context(), country, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save tax schedule")
		return
	}

	logger.Info("Tax schedule saved successfully")
	c.JSON(http.StatusOK, dto.ToTaxScheduleResponse(saved))
}
