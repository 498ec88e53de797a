// Package taxengine evaluates progressive marginal tax schedules, samples them
// for plotting, finds effective-rate breakevens between countries and converts
// monetary values between currencies. Everything here is pure and safe for
// concurrent use.
package taxengine

import (
	"fmt"
	"math"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

// TaxResult is the outcome of evaluating a schedule at one income.
type TaxResult struct {
	TaxAmount     float64
	EffectiveRate float64
}

// Evaluator evaluates a validated bracket schedule. Build one with NewEvaluator
// when the same schedule is evaluated many times.
type Evaluator struct {
	brackets []domain.TaxBracket
}

// NewEvaluator validates brackets and keeps a private copy of them.
func NewEvaluator(brackets []domain.TaxBracket) (*Evaluator, error) {
	if err := ValidateBrackets(brackets); err != nil {
		return nil, err
	}
	return &Evaluator{brackets: domain.CloneBrackets(brackets)}, nil
}

// ComputeTax returns the tax owed and the effective rate at income.
func ComputeTax(brackets []domain.TaxBracket, income float64) (TaxResult, error) {
	e, err := NewEvaluator(brackets)
	if err != nil {
		return TaxResult{}, err
	}
	return e.Evaluate(income)
}

// ValidateBrackets checks that brackets are non-empty, strictly ascending, end with
// exactly one unbounded bracket and carry rates within [0, 1].
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: no brackets", apperrors.ErrInvalidSchedule)
	}
	lower := 0.0
	last := len(brackets) - 1
	for i, b := range brackets {
		if math.IsNaN(b.MarginalRate) || b.MarginalRate < 0 || b.MarginalRate > 1 {
			return fmt.Errorf("%w: bracket %d has marginal rate %v outside [0, 1]", apperrors.ErrInvalidSchedule, i, b.MarginalRate)
		}
		if b.IsUnbounded() {
			if i != last {
				return fmt.Errorf("%w: bracket %d is unbounded but is not the final bracket", apperrors.ErrInvalidSchedule, i)
			}
			continue
		}
		if i == last {
			return fmt.Errorf("%w: final bracket must be unbounded", apperrors.ErrInvalidSchedule)
		}
		limit := *b.IncomeLimit
		if math.IsNaN(limit) || math.IsInf(limit, 0) || limit <= lower {
			return fmt.Errorf("%w: bracket %d income limit %v must be finite and above %v", apperrors.ErrInvalidSchedule, i, limit, lower)
		}
		lower = limit
	}
	return nil
}

// Evaluate returns the tax owed and the effective rate at income.
func (e *Evaluator) Evaluate(income float64) (TaxResult, error) {
	if err := ValidateIncome(income); err != nil {
		return TaxResult{}, err
	}
	tax := e.tax(income)
	return TaxResult{TaxAmount: tax, EffectiveRate: effectiveRate(tax, income)}, nil
}

// Boundaries returns the bounded income limits in ascending order.
func (e *Evaluator) Boundaries() []float64 {
	out := make([]float64, 0, len(e.brackets)-1)
	for _, b := range e.brackets {
		if !b.IsUnbounded() {
			out = append(out, *b.IncomeLimit)
		}
	}
	return out
}

func (e *Evaluator) tax(income float64) float64 {
	var tax, lower float64
	for _, b := range e.brackets {
		if b.IsUnbounded() || income <= *b.IncomeLimit {
			tax += b.MarginalRate * (income - lower)
			break
		}
		tax += b.MarginalRate * (*b.IncomeLimit - lower)
		lower = *b.IncomeLimit
	}
	return tax
}

func (e *Evaluator) rate(income float64) float64 {
	return effectiveRate(e.tax(income), income)
}

func effectiveRate(tax, income float64) float64 {
	if income == 0 {
		return 0
	}
	return tax / income
}

// ValidateIncome rejects negative, NaN and infinite incomes.
func ValidateIncome(income float64) error {
	if math.IsNaN(income) || math.IsInf(income, 0) || income < 0 {
		return fmt.Errorf("%w: income must be a non-negative number, got %v", apperrors.ErrInvalidInput, income)
	}
	return nil
}
