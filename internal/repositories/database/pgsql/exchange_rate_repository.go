package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	"github.com/SscSPs/tax_compare_app/internal/models"
	"github.com/SscSPs/tax_compare_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository stores exchange rate snapshots using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const upsertExchangeRateSQL = `
	INSERT INTO exchange_rates (
		exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
		created_at, created_by, last_updated_at, last_updated_by
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (from_currency_code, to_currency_code, date_effective)
	DO UPDATE SET rate = EXCLUDED.rate,
		last_updated_at = EXCLUDED.last_updated_at,
		last_updated_by = EXCLUDED.last_updated_by`

// SaveExchangeRates upserts a snapshot in a single transaction.
func (r *PgxExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rate := range rates {
		m := mapping.ToModelExchangeRate(rate)
		batch.Queue(upsertExchangeRateSQL,
			m.ExchangeRateID, strings.ToUpper(m.FromCurrencyCode), strings.ToUpper(m.ToCurrencyCode),
			m.Rate, m.DateEffective, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to save exchange rates: %w", err)
		}
		return nil
	})
}

// FindLatestExchangeRates returns the most recent stored rate per quoted currency.
func (r *PgxExchangeRateRepository) FindLatestExchangeRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT DISTINCT ON (to_currency_code)
			exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1
		ORDER BY to_currency_code, date_effective DESC;
	`

	rows, err := r.Pool.Query(ctx, query, strings.ToUpper(baseCurrencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to find exchange rates: %w", err)
	}
	defer rows.Close()

	var modelRates []models.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(
			&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode,
			&m.Rate, &m.DateEffective, &m.CreatedAt,
			&m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}

	return mapping.ToDomainExchangeRates(modelRates), nil
}
