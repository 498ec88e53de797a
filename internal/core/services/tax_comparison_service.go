package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/core/taxengine"
	"github.com/SscSPs/tax_compare_app/internal/dto"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxIncomeCeiling bounds max_income so sampling stays cheap.
	DefaultMaxIncomeCeiling = 10_000_000
	defaultWorkerLimit      = 8
)

type taxComparisonService struct {
	BaseService
	scheduleSvc      portssvc.TaxScheduleReaderSvc
	rateSvc          portssvc.ExchangeRateReaderSvc
	generator        *taxengine.Generator
	maxIncomeCeiling float64
	workerLimit      int
}

// TaxComparisonServiceOption is a functional option for configuring the tax comparison service
type TaxComparisonServiceOption func(*taxComparisonService)

// WithGenerator sets the schedule generator, and with it the sampling policy.
func WithGenerator(g *taxengine.Generator) TaxComparisonServiceOption {
	return func(s *taxComparisonService) {
		s.generator = g
	}
}

// WithMaxIncomeCeiling sets the largest accepted max_income.
func WithMaxIncomeCeiling(ceiling float64) TaxComparisonServiceOption {
	return func(s *taxComparisonService) {
		s.maxIncomeCeiling = ceiling
	}
}

// WithWorkerLimit bounds the number of countries or pairs computed concurrently.
func WithWorkerLimit(n int) TaxComparisonServiceOption {
	return func(s *taxComparisonService) {
		if n > 0 {
			s.workerLimit = n
		}
	}
}

// NewTaxComparisonService creates the service behind the comparison endpoint.
func NewTaxComparisonService(
	scheduleSvc portssvc.TaxScheduleReaderSvc,
	rateSvc portssvc.ExchangeRateReaderSvc,
	options ...TaxComparisonServiceOption,
) portssvc.TaxComparisonSvc {
	svc := &taxComparisonService{
		scheduleSvc:      scheduleSvc,
		rateSvc:          rateSvc,
		maxIncomeCeiling: DefaultMaxIncomeCeiling,
		workerLimit:      defaultWorkerLimit,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.generator == nil {
		svc.generator, _ = taxengine.NewGenerator(taxengine.DefaultSamplingPolicy)
	}
	return svc
}

var _ portssvc.TaxComparisonSvc = (*taxComparisonService)(nil)

// countryResult is the outcome of one country's computation. Brackets and points
// are in the display currency.
type countryResult struct {
	country  string
	brackets []domain.TaxBracket
	points   []domain.SampledPoint
	data     dto.CountryTaxData
	err      error
}

type pairResult struct {
	key  string
	data dto.BreakevenData
	err  error
}

// CompareTaxes samples every requested country, evaluates the specific income and
// optionally solves breakevens for every unordered pair.
func (s *taxComparisonService) CompareTaxes(ctx context.Context, req dto.TaxComparisonRequest) (*dto.TaxComparisonResponse, error) {
	if math.IsNaN(req.MaxIncome) || req.MaxIncome <= 0 || req.MaxIncome > s.maxIncomeCeiling {
		return nil, fmt.Errorf("%w: max_income must be in (0, %v], got %v", apperrors.ErrInvalidInput, s.maxIncomeCeiling, req.MaxIncome)
	}

	countries := lo.Uniq(lo.Compact(lo.Map(req.Countries, func(c string, _ int) string {
		return strings.TrimSpace(c)
	})))
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: at least one country is required", apperrors.ErrInvalidInput)
	}

	resp := &dto.TaxComparisonResponse{
		CountrySpecificData: make(map[string]dto.CountryTaxData, len(countries)),
	}

	var target string
	var rates map[string]domain.ExchangeRate
	if req.NormalizingCurrency != nil && strings.TrimSpace(*req.NormalizingCurrency) != "" {
		target = strings.ToUpper(strings.TrimSpace(*req.NormalizingCurrency))
		var err error
		rates, err = s.rateSvc.GetExchangeRates(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("failed to load exchange rates for %s: %w", target, err)
		}
		resp.NormalizingCurrency = &target
	}

	var specificIncome *float64
	if req.Income != nil {
		if err := taxengine.ValidateIncome(*req.Income); err != nil {
			resp.Errors = append(resp.Errors, dto.ComputationError{Scope: dto.ErrorScopeIncome, Message: err.Error()})
		} else {
			specificIncome = req.Income
		}
	}

	results := make([]countryResult, len(countries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)
	for i, country := range countries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.computeCountry(gctx, country, target, rates, req.MaxIncome, specificIncome)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.err != nil {
			s.LogWarn(ctx, r.err, "Country computation failed", slog.String("country", r.country))
			resp.Errors = append(resp.Errors, dto.ComputationError{Scope: dto.ErrorScopeCountry, Key: r.country, Message: r.err.Error()})
			continue
		}
		resp.CountrySpecificData[r.country] = r.data
	}

	if req.ShowBreakEven {
		pairs, err := s.computePairs(ctx, results)
		if err != nil {
			return nil, err
		}
		resp.CountryCombData = make(map[string]dto.BreakevenData, len(pairs))
		for _, p := range pairs {
			if p.err != nil {
				resp.Errors = append(resp.Errors, dto.ComputationError{Scope: dto.ErrorScopePair, Key: p.key, Message: p.err.Error()})
				continue
			}
			resp.CountryCombData[p.key] = p.data
		}
	}

	s.LogInfo(ctx, "Tax comparison computed",
		slog.Int("countries", len(countries)),
		slog.Bool("show_break_even", req.ShowBreakEven),
		slog.String("normalizing_currency", target),
		slog.Int("errors", len(resp.Errors)))
	return resp, nil
}

func (s *taxComparisonService) computeCountry(
	ctx context.Context,
	country, target string,
	rates map[string]domain.ExchangeRate,
	maxIncome float64,
	specificIncome *float64,
) countryResult {
	out := countryResult{country: country}

	schedule, err := s.scheduleSvc.GetTaxSchedule(ctx, country)
	if err != nil {
		out.err = err
		return out
	}

	var rate *float64
	if target != "" {
		rate, err = localPerTarget(schedule.Currency, target, rates)
		if err != nil {
			out.err = err
			return out
		}
	}

	brackets, err := taxengine.ConvertBrackets(schedule.Brackets, rate)
	if err != nil {
		out.err = err
		return out
	}
	points, err := s.generator.Generate(brackets, maxIncome)
	if err != nil {
		out.err = err
		return out
	}

	out.brackets = brackets
	out.points = points
	out.data = dto.CountryTaxData{
		Incomes:           lo.Map(points, func(p domain.SampledPoint, _ int) float64 { return p.Income }),
		TaxAmounts:        lo.Map(points, func(p domain.SampledPoint, _ int) float64 { return p.TaxAmount }),
		EffectiveTaxRates: lo.Map(points, func(p domain.SampledPoint, _ int) float64 { return p.EffectiveRate }),
		TaxBrackets:       dto.ToTaxBracketDTOs(schedule.Brackets),
		ExchangeRate:      rate,
		Currency:          schedule.Currency,
	}

	if specificIncome != nil {
		result, err := taxengine.ComputeTax(brackets, *specificIncome)
		if err != nil {
			out.err = err
			return out
		}
		income := *specificIncome
		out.data.SpecificIncome = &income
		out.data.SpecificTaxAmount = &result.TaxAmount
		out.data.SpecificTaxRate = &result.EffectiveRate
	}
	return out
}

// localPerTarget returns how many local-currency units one target unit buys, or
// nil when no conversion applies.
func localPerTarget(local, target string, rates map[string]domain.ExchangeRate) (*float64, error) {
	if strings.EqualFold(local, target) {
		return nil, nil
	}
	rate, ok := rates[strings.ToUpper(local)]
	if !ok {
		return nil, fmt.Errorf("%w: no exchange rate from %s to %s", apperrors.ErrNotFound, target, local)
	}
	value := rate.Rate.InexactFloat64()
	if err := taxengine.ValidateRate(value); err != nil {
		return nil, err
	}
	if value == 1 {
		return nil, nil
	}
	return &value, nil
}

// computePairs solves breakevens for every unordered pair in request order.
// Pairs involving a failed country are reported as skipped.
func (s *taxComparisonService) computePairs(ctx context.Context, results []countryResult) ([]pairResult, error) {
	type pair struct{ a, b int }
	var pairs []pair
	for i := range results {
		for j := i + 1; j < len(results); j++ {
			pairs = append(pairs, pair{a: i, b: j})
		}
	}

	out := make([]pairResult, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)
	for k, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, b := results[p.a], results[p.b]
			out[k] = pairResult{key: a.country + "-" + b.country}
			if failed, ok := lo.Find([]countryResult{a, b}, func(r countryResult) bool { return r.err != nil }); ok {
				out[k].err = fmt.Errorf("skipped: country %q could not be computed", failed.country)
				return nil
			}
			points, err := taxengine.FindBreakevens(
				taxengine.SampledSchedule{Country: a.country, Brackets: a.brackets, Points: a.points},
				taxengine.SampledSchedule{Country: b.country, Brackets: b.brackets, Points: b.points},
			)
			if err != nil {
				out[k].err = err
				return nil
			}
			out[k].data = dto.BreakevenData{
				BreakevenIncomes:           lo.Map(points, func(p domain.BreakevenPoint, _ int) float64 { return p.Income }),
				BreakevenTaxAmounts:        lo.Map(points, func(p domain.BreakevenPoint, _ int) float64 { return p.TaxAmount }),
				BreakevenEffectiveTaxRates: lo.Map(points, func(p domain.BreakevenPoint, _ int) float64 { return p.EffectiveRate }),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
