package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/core/taxengine"
	"github.com/SscSPs/tax_compare_app/internal/platform/config"
	"github.com/patrickmn/go-cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	generator, err := taxengine.NewGenerator(taxengine.SamplingPolicy{
		BaseStep:   cfg.SamplingBaseStep,
		GrowthRate: cfg.SamplingGrowthRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure schedule sampling: %w", err)
	}

	container := &portssvc.ServiceContainer{}
	container.TaxSchedule = NewTaxScheduleService(repos.TaxScheduleRepo)

	rateOptions := []ExchangeRateServiceOption{
		WithRateCache(cache.New(cfg.ExchangeRateCacheTTL, 2*cfg.ExchangeRateCacheTTL)),
	}
	if repos.ExchangeRateRepo != nil {
		rateOptions = append(rateOptions, WithExchangeRateRepository(repos.ExchangeRateRepo))
	}
	container.ExchangeRate = NewExchangeRateService(repos.RateProvider, rateOptions...)

	container.TaxComparison = NewTaxComparisonService(
		container.TaxSchedule,
		container.ExchangeRate,
		WithGenerator(generator),
		WithMaxIncomeCeiling(cfg.MaxIncomeCeiling),
		WithWorkerLimit(cfg.ComputeWorkers),
	)

	return container, nil
}
