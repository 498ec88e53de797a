package models

// TaxSchedule is a row of tax_schedules.
type TaxSchedule struct {
	Country  string `db:"country"`
	Currency string `db:"currency"`
	AuditFields
}

// TaxBracket is a row of tax_brackets. Position orders the brackets within a
// country; a NULL income limit marks the unbounded bracket.
type TaxBracket struct {
	Country      string   `db:"country"`
	Position     int      `db:"position"`
	MarginalRate float64  `db:"marginal_rate"`
	IncomeLimit  *float64 `db:"income_limit"`
}
