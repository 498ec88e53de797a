package taxengine_test

import (
	"math"
	"testing"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	"github.com/SscSPs/tax_compare_app/internal/core/taxengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limit(v float64) *float64 {
	return &v
}

func bracket(rate float64, incomeLimit *float64) domain.TaxBracket {
	return domain.TaxBracket{MarginalRate: rate, IncomeLimit: incomeLimit}
}

// threeBand is 10% to 10,000, 20% to 40,000 and 30% above.
func threeBand() []domain.TaxBracket {
	return []domain.TaxBracket{
		bracket(0.1, limit(10000)),
		bracket(0.2, limit(40000)),
		bracket(0.3, nil),
	}
}

func TestComputeTax(t *testing.T) {
	wiki := []domain.TaxBracket{
		bracket(0.1, limit(10000)),
		bracket(0.2, limit(20000)),
		bracket(0.3, nil),
	}

	tests := []struct {
		name     string
		brackets []domain.TaxBracket
		income   float64
		wantTax  float64
		wantRate float64
	}{
		{name: "zero income", brackets: threeBand(), income: 0, wantTax: 0, wantRate: 0},
		{name: "inside first bracket", brackets: threeBand(), income: 5000, wantTax: 500, wantRate: 0.1},
		{name: "on first boundary", brackets: threeBand(), income: 10000, wantTax: 1000, wantRate: 0.1},
		{name: "top bracket", brackets: threeBand(), income: 50000, wantTax: 10000, wantRate: 0.2},
		{name: "textbook example", brackets: wiki, income: 25000, wantTax: 4500, wantRate: 0.18},
		{name: "single flat bracket", brackets: []domain.TaxBracket{bracket(0.25, nil)}, income: 80000, wantTax: 20000, wantRate: 0.25},
		{
			name: "non-monotonic rates",
			brackets: []domain.TaxBracket{
				bracket(0.3, limit(1000)),
				bracket(0.1, nil),
			},
			income:   2000,
			wantTax:  400,
			wantRate: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := taxengine.ComputeTax(tt.brackets, tt.income)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTax, got.TaxAmount, 1e-9)
			assert.InDelta(t, tt.wantRate, got.EffectiveRate, 1e-12)
		})
	}
}

func TestComputeTax_NegativeIncome(t *testing.T) {
	_, err := taxengine.ComputeTax(threeBand(), -1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = taxengine.ComputeTax(threeBand(), math.NaN())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []domain.TaxBracket
		wantErr  bool
	}{
		{name: "valid", brackets: threeBand()},
		{name: "empty", brackets: nil, wantErr: true},
		{name: "missing unbounded bracket", brackets: []domain.TaxBracket{bracket(0.1, limit(100))}, wantErr: true},
		{
			name:     "unbounded bracket not last",
			brackets: []domain.TaxBracket{bracket(0.1, nil), bracket(0.2, nil)},
			wantErr:  true,
		},
		{
			name:     "limits not ascending",
			brackets: []domain.TaxBracket{bracket(0.1, limit(500)), bracket(0.2, limit(500)), bracket(0.3, nil)},
			wantErr:  true,
		},
		{
			name:     "zero first limit",
			brackets: []domain.TaxBracket{bracket(0.1, limit(0)), bracket(0.2, nil)},
			wantErr:  true,
		},
		{name: "rate above one", brackets: []domain.TaxBracket{bracket(1.5, nil)}, wantErr: true},
		{name: "negative rate", brackets: []domain.TaxBracket{bracket(-0.1, nil)}, wantErr: true},
		{name: "infinite limit", brackets: []domain.TaxBracket{bracket(0.1, limit(math.Inf(1))), bracket(0.2, nil)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := taxengine.ValidateBrackets(tt.brackets)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidSchedule)
				assert.NotErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestComputeTax_ContinuousAndMonotonic(t *testing.T) {
	brackets := threeBand()
	prev := -1.0
	for income := 0.0; income <= 60000; income += 250 {
		got, err := taxengine.ComputeTax(brackets, income)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.TaxAmount, prev)
		prev = got.TaxAmount
	}

	for _, boundary := range []float64{10000, 40000} {
		below, err := taxengine.ComputeTax(brackets, boundary-1e-6)
		require.NoError(t, err)
		above, err := taxengine.ComputeTax(brackets, boundary+1e-6)
		require.NoError(t, err)
		assert.InDelta(t, below.TaxAmount, above.TaxAmount, 1e-6)
	}
}

func TestEvaluator_DoesNotAliasInput(t *testing.T) {
	brackets := threeBand()
	e, err := taxengine.NewEvaluator(brackets)
	require.NoError(t, err)

	*brackets[0].IncomeLimit = 1

	got, err := e.Evaluate(50000)
	require.NoError(t, err)
	assert.InDelta(t, 10000, got.TaxAmount, 1e-9)
	assert.Equal(t, []float64{10000, 40000}, e.Boundaries())
}
