package pgsql

import (
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed repositories. The rate provider
// is not database-backed and is left for the caller to set.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TaxScheduleRepo:  NewPgxTaxScheduleRepository(dbPool),
		ExchangeRateRepo: NewPgxExchangeRateRepository(dbPool),
	}
}
