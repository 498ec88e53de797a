package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	"github.com/SscSPs/tax_compare_app/internal/models"
	"github.com/SscSPs/tax_compare_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTaxScheduleRepository stores country bracket schedules using pgxpool.
type PgxTaxScheduleRepository struct {
	BaseRepository
}

// NewPgxTaxScheduleRepository creates a new PgxTaxScheduleRepository.
func NewPgxTaxScheduleRepository(db *pgxpool.Pool) *PgxTaxScheduleRepository {
	return &PgxTaxScheduleRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.TaxScheduleRepositoryFacade = (*PgxTaxScheduleRepository)(nil)

const selectScheduleColumns = `
	SELECT s.country, s.currency, s.created_at, s.created_by, s.last_updated_at, s.last_updated_by,
		b.position, b.marginal_rate, b.income_limit
	FROM tax_schedules s
	JOIN tax_brackets b ON b.country = s.country`

// FindTaxSchedule retrieves the schedule of a country with its brackets in order.
func (r *PgxTaxScheduleRepository) FindTaxSchedule(ctx context.Context, country string) (*domain.CountryTaxSchedule, error) {
	schedules, err := r.query(ctx, selectScheduleColumns+` WHERE s.country = $1 ORDER BY b.position`, country)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, fmt.Errorf("%w: tax schedule for %q", apperrors.ErrNotFound, country)
	}
	return &schedules[0], nil
}

// ListTaxSchedules retrieves every schedule ordered by country.
func (r *PgxTaxScheduleRepository) ListTaxSchedules(ctx context.Context) ([]domain.CountryTaxSchedule, error) {
	return r.query(ctx, selectScheduleColumns+` ORDER BY s.country, b.position`)
}

// query groups joined rows into schedules. Rows must be ordered by country, then position.
func (r *PgxTaxScheduleRepository) query(ctx context.Context, sql string, args ...any) ([]domain.CountryTaxSchedule, error) {
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax schedules: %w", err)
	}
	defer rows.Close()

	var (
		out      []domain.CountryTaxSchedule
		header   models.TaxSchedule
		brackets []models.TaxBracket
	)
	flush := func() {
		if header.Country != "" {
			out = append(out, mapping.ToDomainTaxSchedule(header, brackets))
		}
	}

	for rows.Next() {
		var h models.TaxSchedule
		var b models.TaxBracket
		if err := rows.Scan(
			&h.Country, &h.Currency, &h.CreatedAt, &h.CreatedBy, &h.LastUpdatedAt, &h.LastUpdatedBy,
			&b.Position, &b.MarginalRate, &b.IncomeLimit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax schedule: %w", err)
		}
		if h.Country != header.Country {
			flush()
			header, brackets = h, nil
		}
		b.Country = h.Country
		brackets = append(brackets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax schedules: %w", err)
	}
	flush()
	return out, nil
}

// SaveTaxSchedule creates or replaces a schedule and all of its brackets.
func (r *PgxTaxScheduleRepository) SaveTaxSchedule(ctx context.Context, schedule domain.CountryTaxSchedule) error {
	header, brackets := mapping.ToModelTaxSchedule(schedule)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO tax_schedules (country, currency, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (country) DO UPDATE SET
				currency = EXCLUDED.currency,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by`,
			header.Country, header.Currency, header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save tax schedule: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM tax_brackets WHERE country = $1`, header.Country); err != nil {
			return fmt.Errorf("failed to clear tax brackets: %w", err)
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"tax_brackets"},
			[]string{"country", "position", "marginal_rate", "income_limit"},
			pgx.CopyFromSlice(len(brackets), func(i int) ([]any, error) {
				b := brackets[i]
				return []any{b.Country, b.Position, b.MarginalRate, b.IncomeLimit}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to save tax brackets: %w", err)
		}
		return nil
	})
}
