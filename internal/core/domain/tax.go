package domain

import "slices"

// TaxBracket is one marginal band of a progressive schedule. A nil IncomeLimit
// marks the final, unbounded bracket.
type TaxBracket struct {
	MarginalRate float64  `json:"marginal_rate"`
	IncomeLimit  *float64 `json:"income_limit"`
}

// IsUnbounded reports whether the bracket extends to infinity.
func (b TaxBracket) IsUnbounded() bool {
	return b.IncomeLimit == nil
}

// CountryTaxSchedule is the reference bracket data of a single country.
// Brackets are ordered ascending by income limit and expressed in Currency.
type CountryTaxSchedule struct {
	Country  string       `json:"country"`
	Currency string       `json:"currency"` // ISO 4217 local currency
	Brackets []TaxBracket `json:"brackets"`
	AuditFields
}

// Clone returns a deep copy so callers never share bracket storage.
func (s CountryTaxSchedule) Clone() CountryTaxSchedule {
	out := s
	out.Brackets = CloneBrackets(s.Brackets)
	return out
}

// CloneBrackets copies a bracket slice including the limit pointers.
func CloneBrackets(brackets []TaxBracket) []TaxBracket {
	if brackets == nil {
		return nil
	}
	out := slices.Clone(brackets)
	for i, b := range out {
		if b.IncomeLimit != nil {
			limit := *b.IncomeLimit
			out[i].IncomeLimit = &limit
		}
	}
	return out
}

// SampledPoint is one evaluated sample of a tax schedule.
type SampledPoint struct {
	Income        float64 `json:"income"`
	TaxAmount     float64 `json:"tax_amount"`
	EffectiveRate float64 `json:"effective_rate"`
}

// BreakevenPoint is an income at which two countries charge the same effective rate.
type BreakevenPoint struct {
	Income        float64 `json:"income"`
	TaxAmount     float64 `json:"tax_amount"`
	EffectiveRate float64 `json:"effective_rate"`
}
