package dto

import (
	"time"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

// SaveTaxScheduleRequest replaces the bracket schedule of a country.
type SaveTaxScheduleRequest struct {
	Currency string          `json:"currency" binding:"required,iso4217"`
	Schedule []TaxBracketDTO `json:"schedule" binding:"required,min=1,dive"`
}

// TaxScheduleResponse is a country's bracket schedule.
type TaxScheduleResponse struct {
	Country       string          `json:"country"`
	Currency      string          `json:"currency"`
	Schedule      []TaxBracketDTO `json:"schedule"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// CountryResponse summarizes a country available for comparison.
type CountryResponse struct {
	Country      string `json:"country"`
	Currency     string `json:"currency"`
	BracketCount int    `json:"bracketCount"`
}

// ListCountriesResponse lists every country available for comparison.
type ListCountriesResponse struct {
	Countries []CountryResponse `json:"countries"`
}

// ToTaxScheduleResponse converts a domain schedule.
func ToTaxScheduleResponse(s *domain.CountryTaxSchedule) TaxScheduleResponse {
	return TaxScheduleResponse{
		Country:       s.Country,
		Currency:      s.Currency,
		Schedule:      ToTaxBracketDTOs(s.Brackets),
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}

// ToListCountriesResponse summarizes schedules.
func ToListCountriesResponse(schedules []domain.CountryTaxSchedule) ListCountriesResponse {
	out := ListCountriesResponse{Countries: make([]CountryResponse, len(schedules))}
	for i, s := range schedules {
		out.Countries[i] = CountryResponse{Country: s.Country, Currency: s.Currency, BracketCount: len(s.Brackets)}
	}
	return out
}
