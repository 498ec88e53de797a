package services

import (
	"context"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRates retrieves every rate quoted against baseCode, keyed by the
	// quoted currency code.
	GetExchangeRates(ctx context.Context, baseCode string) (map[string]domain.ExchangeRate, error)

	// GetExchangeRate retrieves an exchange rate between two currencies.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
}
