package repositories

import (
	"context"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for stored exchange rate snapshots
type ExchangeRateReader interface {
	// FindLatestExchangeRates returns the most recent stored rate for every currency
	// quoted against baseCurrencyCode. An empty slice means nothing is stored.
	FindLatestExchangeRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate snapshots
type ExchangeRateWriter interface {
	// SaveExchangeRates persists a snapshot, replacing rates with the same
	// currency pair and effective date.
	SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateProvider fetches live rates from an external source.
type ExchangeRateProvider interface {
	// FetchLatestRates returns every rate quoted against baseCurrencyCode.
	FetchLatestRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error)
}
