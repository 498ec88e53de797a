package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TaxScheduleRepo TaxScheduleRepositoryFacade
	// ExchangeRateRepo is nil when no database is configured.
	ExchangeRateRepo ExchangeRateRepositoryFacade
	RateProvider     ExchangeRateProvider
}
