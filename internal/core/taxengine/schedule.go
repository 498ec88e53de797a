package taxengine

import (
	"fmt"
	"math"
	"slices"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

// SamplingPolicy spaces sample incomes: each step is the larger of BaseStep and
// GrowthRate times the current income, so spacing is linear at low incomes and
// geometric above BaseStep/GrowthRate.
type SamplingPolicy struct {
	BaseStep   float64
	GrowthRate float64
}

// DefaultSamplingPolicy yields roughly 800 samples up to 10,000,000.
var DefaultSamplingPolicy = SamplingPolicy{BaseStep: 100, GrowthRate: 0.01}

// Validate rejects policies that would not terminate or would not advance.
func (p SamplingPolicy) Validate() error {
	if !(p.BaseStep > 0) || math.IsInf(p.BaseStep, 0) {
		return fmt.Errorf("%w: sampling base step must be positive, got %v", apperrors.ErrInvalidInput, p.BaseStep)
	}
	if !(p.GrowthRate > 0 && p.GrowthRate < 1) {
		return fmt.Errorf("%w: sampling growth rate must be in (0, 1), got %v", apperrors.ErrInvalidInput, p.GrowthRate)
	}
	return nil
}

// Generator samples bracket schedules with a fixed policy.
type Generator struct {
	policy SamplingPolicy
}

// NewGenerator returns a Generator for policy.
func NewGenerator(policy SamplingPolicy) (*Generator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Generator{policy: policy}, nil
}

var defaultGenerator = &Generator{policy: DefaultSamplingPolicy}

// GenerateSchedule samples brackets from 0 to maxIncome with DefaultSamplingPolicy.
func GenerateSchedule(brackets []domain.TaxBracket, maxIncome float64) ([]domain.SampledPoint, error) {
	return defaultGenerator.Generate(brackets, maxIncome)
}

// Policy returns the sampling policy in use.
func (g *Generator) Policy() SamplingPolicy {
	return g.policy
}

// Generate evaluates brackets at ascending, distinct incomes covering [0, maxIncome].
// Zero, maxIncome and every bracket boundary below maxIncome are always sampled.
func (g *Generator) Generate(brackets []domain.TaxBracket, maxIncome float64) ([]domain.SampledPoint, error) {
	if math.IsNaN(maxIncome) || math.IsInf(maxIncome, 0) || maxIncome <= 0 {
		return nil, fmt.Errorf("%w: max income must be positive, got %v", apperrors.ErrInvalidInput, maxIncome)
	}
	e, err := NewEvaluator(brackets)
	if err != nil {
		return nil, err
	}

	incomes := g.incomes(maxIncome)
	for _, limit := range e.Boundaries() {
		if limit < maxIncome {
			incomes = append(incomes, limit)
		}
	}
	slices.Sort(incomes)
	incomes = slices.Compact(incomes)

	points := make([]domain.SampledPoint, len(incomes))
	for i, income := range incomes {
		tax := e.tax(income)
		points[i] = domain.SampledPoint{
			Income:        income,
			TaxAmount:     tax,
			EffectiveRate: effectiveRate(tax, income),
		}
	}
	return points, nil
}

func (g *Generator) incomes(maxIncome float64) []float64 {
	out := []float64{0}
	x := 0.0
	for {
		x += math.Max(g.policy.BaseStep, x*g.policy.GrowthRate)
		if x >= maxIncome {
			break
		}
		out = append(out, x)
	}
	return append(out, maxIncome)
}
