package services

import (
	"context"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	"github.com/SscSPs/tax_compare_app/internal/dto"
)

// TaxComparisonSvc compares the tax schedules of several countries.
type TaxComparisonSvc interface {
	// CompareTaxes samples every requested country, evaluates the specific income
	// and, when requested, solves breakevens for every country pair. Failures
	// confined to one country or pair are reported in the response.
	CompareTaxes(ctx context.Context, req dto.TaxComparisonRequest) (*dto.TaxComparisonResponse, error)
}

// TaxScheduleReaderSvc defines read operations for reference bracket data
type TaxScheduleReaderSvc interface {
	// GetTaxSchedule retrieves the schedule of a country.
	GetTaxSchedule(ctx context.Context, country string) (*domain.CountryTaxSchedule, error)

	// ListTaxSchedules retrieves every schedule ordered by country.
	ListTaxSchedules(ctx context.Context) ([]domain.CountryTaxSchedule, error)
}

// TaxScheduleWriterSvc defines write operations for reference bracket data
type TaxScheduleWriterSvc interface {
	// SaveTaxSchedule validates and stores the schedule of a country.
	SaveTaxSchedule(ctx context.Context, country string, req dto.SaveTaxScheduleRequest, userID string) (*domain.CountryTaxSchedule, error)

	// SeedTaxSchedules stores the given schedules for countries that have none yet
	// and returns how many were added.
	SeedTaxSchedules(ctx context.Context, schedules []domain.CountryTaxSchedule) (int, error)
}

// TaxScheduleSvcFacade combines all tax schedule service interfaces
type TaxScheduleSvcFacade interface {
	TaxScheduleReaderSvc
	TaxScheduleWriterSvc
}
