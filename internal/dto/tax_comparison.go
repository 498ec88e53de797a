package dto

import "github.com/SscSPs/tax_compare_app/internal/core/domain"

// Error scopes reported in TaxComparisonResponse.Errors.
const (
	ErrorScopeCountry = "country"
	ErrorScopePair    = "pair"
	ErrorScopeIncome  = "income"
)

// TaxComparisonRequest is the body of a comparison. Income and MaxIncome are in
// NormalizingCurrency when it is set, otherwise in each country's local currency.
type TaxComparisonRequest struct {
	Countries           []string `json:"countries" binding:"required,min=1,dive,required"`
	Income              *float64 `json:"income"`
	MaxIncome           float64  `json:"max_income" binding:"required,gt=0"`
	ShowBreakEven       bool     `json:"show_break_even"`
	NormalizingCurrency *string  `json:"normalizing_currency" binding:"omitempty,iso4217"`
}

// TaxBracketDTO is a bracket as sent to clients.
type TaxBracketDTO struct {
	MarginalRate float64  `json:"marginal_rate" binding:"gte=0,lte=1"`
	IncomeLimit  *float64 `json:"income_limit" binding:"omitempty,gt=0"`
}

// CountryTaxData carries the sampled schedule and specific-income result of one country.
type CountryTaxData struct {
	Incomes           []float64       `json:"incomes"`
	TaxAmounts        []float64       `json:"tax_amounts"`
	EffectiveTaxRates []float64       `json:"effective_tax_rates"`
	SpecificIncome    *float64        `json:"specific_income"`
	SpecificTaxAmount *float64        `json:"specific_tax_amount"`
	SpecificTaxRate   *float64        `json:"specific_tax_rate"`
	TaxBrackets       []TaxBracketDTO `json:"tax_brackets"` // local currency
	ExchangeRate      *float64        `json:"exchange_rate"`
	Currency          string          `json:"currency"`
}

// BreakevenData carries the breakeven points of one country pair.
type BreakevenData struct {
	BreakevenIncomes           []float64 `json:"breakeven_incomes"`
	BreakevenTaxAmounts        []float64 `json:"breakeven_tax_amounts"`
	BreakevenEffectiveTaxRates []float64 `json:"breakeven_effective_tax_rates"`
}

// ComputationError reports a failure confined to one country, pair or input.
type ComputationError struct {
	Scope   string `json:"scope"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message"`
}

// TaxComparisonResponse is the result of a comparison. CountryCombData is null
// unless breakevens were requested.
type TaxComparisonResponse struct {
	CountrySpecificData map[string]CountryTaxData `json:"country_specific_data"`
	CountryCombData     map[string]BreakevenData  `json:"country_comb_data"`
	NormalizingCurrency *string                   `json:"normalizing_currency,omitempty"`
	Errors              []ComputationError        `json:"errors,omitempty"`
}

// ToTaxBracketDTOs converts domain brackets for a response.
func ToTaxBracketDTOs(brackets []domain.TaxBracket) []TaxBracketDTO {
	out := make([]TaxBracketDTO, len(brackets))
	for i, b := range domain.CloneBrackets(brackets) {
		out[i] = TaxBracketDTO{MarginalRate: b.MarginalRate, IncomeLimit: b.IncomeLimit}
	}
	return out
}

// ToDomainTaxBrackets converts request brackets to domain brackets.
func ToDomainTaxBrackets(brackets []TaxBracketDTO) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(brackets))
	for i, b := range brackets {
		out[i] = domain.TaxBracket{MarginalRate: b.MarginalRate, IncomeLimit: b.IncomeLimit}
	}
	return domain.CloneBrackets(out)
}
