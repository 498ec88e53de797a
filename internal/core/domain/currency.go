package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the number of ToCurrencyCode units one FromCurrencyCode unit buys.
// When FromCurrencyCode is the display currency and ToCurrencyCode a country's local
// currency, Rate is the local-per-target factor the tax engine divides by.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
