package services_test

import (
	"context"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock TaxScheduleRepository ---
type MockTaxScheduleRepository struct {
	mock.Mock
}

func (m *MockTaxScheduleRepository) FindTaxSchedule(ctx context.Context, country string) (*domain.CountryTaxSchedule, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryTaxSchedule), args.Error(1)
}

func (m *MockTaxScheduleRepository) ListTaxSchedules(ctx context.Context) ([]domain.CountryTaxSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CountryTaxSchedule), args.Error(1)
}

func (m *MockTaxScheduleRepository) SaveTaxSchedule(ctx context.Context, schedule domain.CountryTaxSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindLatestExchangeRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

// --- Mock ExchangeRateProvider ---
type MockExchangeRateProvider struct {
	mock.Mock
}

func (m *MockExchangeRateProvider) FetchLatestRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

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

func limitPtr(v float64) *float64 {
	return &v
}

func stringPtr(s string) *string {
	return &s
}
