package taxengine

import (
	"fmt"
	"math"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

// Convert expresses a local-currency amount in the target currency. exchangeRate is
// local-currency units per one target unit, so the amount is divided by it. A nil
// rate means no conversion.
func Convert(amount float64, exchangeRate *float64) (float64, error) {
	if exchangeRate == nil {
		return amount, nil
	}
	if err := ValidateRate(*exchangeRate); err != nil {
		return 0, err
	}
	return amount / *exchangeRate, nil
}

// ValidateRate rejects rates that are not positive finite numbers.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("%w: rate must be positive, got %v", apperrors.ErrInvalidRate, rate)
	}
	return nil
}

// ConvertBrackets returns a copy of brackets with every income limit passed
// through Convert. Marginal rates are dimensionless and stay unchanged.
func ConvertBrackets(brackets []domain.TaxBracket, exchangeRate *float64) ([]domain.TaxBracket, error) {
	if exchangeRate != nil {
		if err := ValidateRate(*exchangeRate); err != nil {
			return nil, err
		}
	}
	out := domain.CloneBrackets(brackets)
	for i := range out {
		if out[i].IncomeLimit == nil {
			continue
		}
		limit, err := Convert(*out[i].IncomeLimit, exchangeRate)
		if err != nil {
			return nil, err
		}
		*out[i].IncomeLimit = limit
	}
	return out, nil
}
