package taxengine

import (
	"fmt"
	"math"
	"slices"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
)

const (
	// rateTolerance is the effective-rate gap treated as equality.
	rateTolerance = 1e-12
	// incomeTolerance is the relative income change at which refinement stops.
	incomeTolerance     = 1e-12
	maxRefineIterations = 100
)

// SampledSchedule is a country's brackets together with the samples generated
// from them. The samples only select where crossings are searched for; rates are
// always recomputed from the brackets.
type SampledSchedule struct {
	Country  string
	Brackets []domain.TaxBracket
	Points   []domain.SampledPoint
}

// FindBreakevens returns the incomes at which a and b charge equal effective rates,
// in ascending order. A flat stretch of equal rates is reported once, at its first
// sampled income. The origin is never reported.
func FindBreakevens(a, b SampledSchedule) ([]domain.BreakevenPoint, error) {
	if a.Country == b.Country {
		return []domain.BreakevenPoint{}, nil
	}
	ea, err := NewEvaluator(a.Brackets)
	if err != nil {
		return nil, fmt.Errorf("country %q: %w", a.Country, err)
	}
	eb, err := NewEvaluator(b.Brackets)
	if err != nil {
		return nil, fmt.Errorf("country %q: %w", b.Country, err)
	}
	g := rateGap{a: ea, b: eb}
	return g.scan(mergeIncomes(a.Points, b.Points)), nil
}

func mergeIncomes(a, b []domain.SampledPoint) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	for _, points := range [][]domain.SampledPoint{a, b} {
		for _, p := range points {
			if p.Income > 0 {
				out = append(out, p.Income)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

type rateGap struct {
	a, b *Evaluator
}

// at returns rateA - rateB, snapped to zero within rateTolerance.
func (g rateGap) at(income float64) float64 {
	d := g.a.rate(income) - g.b.rate(income)
	if math.Abs(d) <= rateTolerance {
		return 0
	}
	return d
}

func (g rateGap) point(income float64) domain.BreakevenPoint {
	tax := g.a.tax(income)
	return domain.BreakevenPoint{
		Income:        income,
		TaxAmount:     tax,
		EffectiveRate: effectiveRate(tax, income),
	}
}

func (g rateGap) scan(incomes []float64) []domain.BreakevenPoint {
	points := []domain.BreakevenPoint{}
	if len(incomes) == 0 {
		return points
	}
	// inZeroRun is set while consecutive samples have equal rates; only the
	// first sample of such a run is reported.
	prev := g.at(incomes[0])
	inZeroRun := prev == 0
	if inZeroRun {
		points = append(points, g.point(incomes[0]))
	}
	for i := 1; i < len(incomes); i++ {
		cur := g.at(incomes[i])
		switch {
		case cur == 0:
			if !inZeroRun {
				points = append(points, g.point(incomes[i]))
			}
			inZeroRun = true
		case prev != 0 && (prev < 0) != (cur < 0):
			points = append(points, g.point(g.refine(incomes[i-1], incomes[i], prev, cur)))
			inZeroRun = false
		default:
			inZeroRun = false
		}
		prev = cur
	}
	return points
}

// refine locates the root of the rate gap inside (lo, hi), where fLo and fHi have
// opposite signs. It starts from the linear interpolation of the endpoints and
// continues with Illinois false-position steps.
func (g rateGap) refine(lo, hi, fLo, fHi float64) float64 {
	x := interpolate(lo, hi, fLo, fHi)
	side := 0
	for range maxRefineIterations {
		fx := g.at(x)
		if fx == 0 {
			return x
		}
		if (fx < 0) == (fLo < 0) {
			lo, fLo = x, fx
			if side == -1 {
				fHi /= 2
			}
			side = -1
		} else {
			hi, fHi = x, fx
			if side == 1 {
				fLo /= 2
			}
			side = 1
		}
		next := interpolate(lo, hi, fLo, fHi)
		if math.Abs(next-x) <= incomeTolerance*math.Max(1, x) {
			return next
		}
		x = next
	}
	return x
}

func interpolate(lo, hi, fLo, fHi float64) float64 {
	return lo - fLo*(hi-lo)/(fHi-fLo)
}
