package repositories

import (
	"context"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

// TaxScheduleReader defines read operations for reference bracket data
type TaxScheduleReader interface {
	// FindTaxSchedule retrieves the schedule of a country. Returns apperrors.ErrNotFound
	// when the country is unknown.
	FindTaxSchedule(ctx context.Context, country string) (*domain.CountryTaxSchedule, error)

	// ListTaxSchedules retrieves every schedule ordered by country.
	ListTaxSchedules(ctx context.Context) ([]domain.CountryTaxSchedule, error)
}

// TaxScheduleWriter defines write operations for reference bracket data
type TaxScheduleWriter interface {
	// SaveTaxSchedule creates or replaces the schedule of a country.
	SaveTaxSchedule(ctx context.Context, schedule domain.CountryTaxSchedule) error
}

// TaxScheduleRepositoryFacade combines all tax schedule repository interfaces
type TaxScheduleRepositoryFacade interface {
	TaxScheduleReader
	TaxScheduleWriter
}
