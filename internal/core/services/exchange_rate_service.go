package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// DefaultRateCacheTTL is how long fetched rates are served before refetching.
const DefaultRateCacheTTL = time.Hour

type exchangeRateService struct {
	BaseService
	provider portsrepo.ExchangeRateProvider
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	cache    *cache.Cache
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithExchangeRateRepository persists every fetched snapshot and serves the latest
// stored snapshot when the provider fails.
func WithExchangeRateRepository(repo portsrepo.ExchangeRateRepositoryFacade) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.rateRepo = repo
	}
}

// WithRateCache replaces the default in-memory rate cache.
func WithRateCache(c *cache.Cache) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.cache = c
	}
}

// NewExchangeRateService creates an exchange rate service backed by provider.
func NewExchangeRateService(provider portsrepo.ExchangeRateProvider, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{provider: provider}
	for _, option := range options {
		option(svc)
	}
	if svc.cache == nil {
		svc.cache = cache.New(DefaultRateCacheTTL, 2*DefaultRateCacheTTL)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency codes must be 3 letters, got %q", apperrors.ErrValidation, code)
	}
	return code, nil
}

// GetExchangeRates retrieves every usable rate quoted against baseCode.
func (s *exchangeRateService) GetExchangeRates(ctx context.Context, baseCode string) (map[string]domain.ExchangeRate, error) {
	baseCode, err := normalizeCurrencyCode(baseCode)
	if err != nil {
		return nil, err
	}

	if cached, found := s.cache.Get(baseCode); found {
		return cached.(map[string]domain.ExchangeRate), nil
	}

	fetched, err := s.provider.FetchLatestRates(ctx, baseCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, fmt.Errorf("failed to fetch exchange rates for %s: %w", baseCode, err)
		}
		s.LogError(ctx, err, "Failed to fetch exchange rates", slog.String("base_currency", baseCode))
		return s.storedRates(ctx, baseCode, err)
	}

	rates := s.usableRates(ctx, fetched)
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: provider returned no rates for %s", apperrors.ErrUnavailable, baseCode)
	}

	if s.rateRepo != nil {
		positive := lo.Filter(fetched, func(r domain.ExchangeRate, _ int) bool { return r.Rate.IsPositive() })
		if err := s.rateRepo.SaveExchangeRates(ctx, positive); err != nil {
			s.LogWarn(ctx, err, "Failed to persist exchange rate snapshot", slog.String("base_currency", baseCode))
		}
	}

	s.cache.SetDefault(baseCode, rates)
	s.LogDebug(ctx, "Exchange rates fetched", slog.String("base_currency", baseCode), slog.Int("count", len(rates)))
	return rates, nil
}

// storedRates falls back to the latest persisted snapshot. Stored rates are not
// cached so the provider is retried on the next request.
func (s *exchangeRateService) storedRates(ctx context.Context, baseCode string, fetchErr error) (map[string]domain.ExchangeRate, error) {
	unavailable := fmt.Errorf("%w: failed to fetch exchange rates for %s: %v", apperrors.ErrUnavailable, baseCode, fetchErr)
	if s.rateRepo == nil {
		return nil, unavailable
	}
	stored, err := s.rateRepo.FindLatestExchangeRates(ctx, baseCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to read stored exchange rates", slog.String("base_currency", baseCode))
		return nil, unavailable
	}
	rates := s.usableRates(ctx, stored)
	if len(rates) == 0 {
		return nil, unavailable
	}
	s.LogInfo(ctx, "Serving stored exchange rates", slog.String("base_currency", baseCode), slog.Int("count", len(rates)))
	return rates, nil
}

// usableRates indexes rates by quoted currency, dropping non-positive ones.
func (s *exchangeRateService) usableRates(ctx context.Context, rates []domain.ExchangeRate) map[string]domain.ExchangeRate {
	out := make(map[string]domain.ExchangeRate, len(rates))
	for _, rate := range rates {
		if !rate.Rate.IsPositive() {
			s.LogDebug(ctx, "Skipping non-positive exchange rate",
				slog.String("from", rate.FromCurrencyCode),
				slog.String("to", rate.ToCurrencyCode),
				slog.String("rate", rate.Rate.String()))
			continue
		}
		out[rate.ToCurrencyCode] = rate
	}
	return out
}

// GetExchangeRate retrieves the rate converting one fromCode unit into toCode.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode, err := normalizeCurrencyCode(fromCode)
	if err != nil {
		return nil, err
	}
	toCode, err = normalizeCurrencyCode(toCode)
	if err != nil {
		return nil, err
	}
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	rates, err := s.GetExchangeRates(ctx, fromCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	rate, ok := rates[toCode]
	if !ok {
		return nil, fmt.Errorf("%w: no exchange rate from %s to %s", apperrors.ErrNotFound, fromCode, toCode)
	}
	return &rate, nil
}
