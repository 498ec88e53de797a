package taxengine_test

import (
	"testing"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	"github.com/SscSPs/tax_compare_app/internal/core/taxengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampled(t *testing.T, country string, brackets []domain.TaxBracket, maxIncome float64) taxengine.SampledSchedule {
	t.Helper()
	points, err := taxengine.GenerateSchedule(brackets, maxIncome)
	require.NoError(t, err)
	return taxengine.SampledSchedule{Country: country, Brackets: brackets, Points: points}
}

func TestFindBreakevens_SingleCrossing(t *testing.T) {
	a := sampled(t, "A", []domain.TaxBracket{bracket(0.1, limit(20000)), bracket(0.3, nil)}, 100000)
	b := sampled(t, "B", []domain.TaxBracket{bracket(0.2, nil)}, 100000)

	points, err := taxengine.FindBreakevens(a, b)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 40000, points[0].Income, 1e-6)
	assert.InDelta(t, 8000, points[0].TaxAmount, 1e-6)
	assert.InDelta(t, 0.2, points[0].EffectiveRate, 1e-9)
}

func TestFindBreakevens_Symmetric(t *testing.T) {
	a := sampled(t, "A", []domain.TaxBracket{bracket(0.1, limit(20000)), bracket(0.3, nil)}, 100000)
	b := sampled(t, "B", []domain.TaxBracket{bracket(0.2, nil)}, 100000)

	ab, err := taxengine.FindBreakevens(a, b)
	require.NoError(t, err)
	ba, err := taxengine.FindBreakevens(b, a)
	require.NoError(t, err)

	require.Len(t, ba, len(ab))
	for i := range ab {
		assert.InDelta(t, ab[i].Income, ba[i].Income, 1e-6)
		assert.InDelta(t, ab[i].EffectiveRate, ba[i].EffectiveRate, 1e-9)
	}
}

func TestFindBreakevens_SameCountry(t *testing.T) {
	a := sampled(t, "A", threeBand(), 100000)

	points, err := taxengine.FindBreakevens(a, a)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestFindBreakevens_FlatOverlapReportedOnce(t *testing.T) {
	a := sampled(t, "A", threeBand(), 100000)
	b := sampled(t, "B", threeBand(), 100000)

	points, err := taxengine.FindBreakevens(a, b)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, a.Points[1].Income, points[0].Income)
}

func TestFindBreakevens_SharedLowBracketThenCrossing(t *testing.T) {
	a := sampled(t, "A", []domain.TaxBracket{bracket(0.1, limit(10000)), bracket(0.2, nil)}, 100000)
	b := sampled(t, "B", []domain.TaxBracket{bracket(0.1, limit(20000)), bracket(0.3, nil)}, 100000)

	points, err := taxengine.FindBreakevens(a, b)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 100.0, points[0].Income)
	assert.InDelta(t, 30000, points[1].Income, 1e-6)
	assert.InDelta(t, 0.2-1000.0/30000, points[1].EffectiveRate, 1e-9)
}

func TestFindBreakevens_NoCrossing(t *testing.T) {
	a := sampled(t, "A", []domain.TaxBracket{bracket(0.1, nil)}, 100000)
	b := sampled(t, "B", []domain.TaxBracket{bracket(0.2, nil)}, 100000)

	points, err := taxengine.FindBreakevens(a, b)
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestFindBreakevens_ResultsAreAscending(t *testing.T) {
	a := sampled(t, "A", []domain.TaxBracket{
		bracket(0.05, limit(10000)),
		bracket(0.4, limit(30000)),
		bracket(0.1, nil),
	}, 500000)
	b := sampled(t, "B", []domain.TaxBracket{bracket(0.15, nil)}, 500000)

	points, err := taxengine.FindBreakevens(a, b)
	require.NoError(t, err)
	require.Len(t, points, 2)
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Income, points[i].Income)
	}
	for _, p := range points {
		assert.InDelta(t, 0.15, p.EffectiveRate, 1e-9)
	}
}

func TestFindBreakevens_InvalidSchedule(t *testing.T) {
	a := sampled(t, "A", threeBand(), 100000)
	b := taxengine.SampledSchedule{Country: "B", Brackets: []domain.TaxBracket{bracket(0.1, limit(10))}}

	_, err := taxengine.FindBreakevens(a, b)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSchedule)
	assert.Contains(t, err.Error(), `"B"`)
}
