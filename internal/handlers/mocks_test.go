package handlers_test

import (
	"context"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TaxComparisonService ---
type MockTaxComparisonService struct {
	mock.Mock
}

func (m *MockTaxComparisonService) CompareTaxes(ctx context.Context, req dto.TaxComparisonRequest) (*dto.TaxComparisonResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TaxComparisonResponse), args.Error(1)
}

var _ portssvc.TaxComparisonSvc = (*MockTaxComparisonService)(nil)

// --- Mock TaxScheduleService ---
type MockTaxScheduleService struct {
	mock.Mock
}

func (m *MockTaxScheduleService) GetTaxSchedule(ctx context.Context, country string) (*domain.CountryTaxSchedule, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryTaxSchedule), args.Error(1)
}

func (m *MockTaxScheduleService) ListTaxSchedules(ctx context.Context) ([]domain.CountryTaxSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CountryTaxSchedule), args.Error(1)
}

func (m *MockTaxScheduleService) SaveTaxSchedule(ctx context.Context, country string, req dto.SaveTaxScheduleRequest, userID string) (*domain.CountryTaxSchedule, error) {
	args := m.Called(ctx, country, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryTaxSchedule), args.Error(1)
}

func (m *MockTaxScheduleService) SeedTaxSchedules(ctx context.Context, schedules []domain.CountryTaxSchedule) (int, error) {
	args := m.Called(ctx, schedules)
	return args.Int(0), args.Error(1)
}

var _ portssvc.TaxScheduleSvcFacade = (*MockTaxScheduleService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetExchangeRates(ctx context.Context, baseCode string) (map[string]domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)
