// Package file serves reference bracket data loaded from a JSON or YAML file.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

// taxesFile is the on-disk layout:
//
//	{"country_map": {"Norway": {"currency": "NOK", "schedule": [{"marginal_rate": 0.22, "income_limit": null}]}}}
type taxesFile struct {
	CountryMap map[string]countryEntry `json:"country_map" yaml:"country_map" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

type countryEntry struct {
	Currency string         `json:"currency" yaml:"currency" validate:"required,iso4217"`
	Schedule []bracketEntry `json:"schedule" yaml:"schedule" validate:"required,min=1"`
}

type bracketEntry struct {
	MarginalRate float64  `json:"marginal_rate" yaml:"marginal_rate"`
	IncomeLimit  *float64 `json:"income_limit" yaml:"income_limit"`
}

// LoadTaxSchedules parses a schedule file. The format is chosen by extension:
// .yaml and .yml are YAML, anything else JSON. Bracket ordering is not checked
// here; malformed brackets surface per country when a schedule is evaluated.
func LoadTaxSchedules(path string) ([]domain.CountryTaxSchedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax schedules from %s: %w", path, err)
	}

	var parsed taxesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &parsed)
	default:
		err = json.Unmarshal(raw, &parsed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse tax schedules from %s: %w", path, err)
	}

	if err := validator.New().Struct(parsed); err != nil {
		return nil, fmt.Errorf("%w: tax schedules in %s: %v", apperrors.ErrValidation, path, err)
	}

	countries := lo.Keys(parsed.CountryMap)
	slices.Sort(countries)

	out := make([]domain.CountryTaxSchedule, 0, len(countries))
	for _, country := range countries {
		entry := parsed.CountryMap[country]
		out = append(out, domain.CountryTaxSchedule{
			Country:  country,
			Currency: strings.ToUpper(entry.Currency),
			Brackets: lo.Map(entry.Schedule, func(b bracketEntry, _ int) domain.TaxBracket {
				return domain.TaxBracket{MarginalRate: b.MarginalRate, IncomeLimit: b.IncomeLimit}
			}),
		})
	}
	return out, nil
}

// TaxScheduleRepository is an in-memory schedule store, typically seeded from a file.
// Saved schedules live until the process exits.
type TaxScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]domain.CountryTaxSchedule
}

var _ portsrepo.TaxScheduleRepositoryFacade = (*TaxScheduleRepository)(nil)

// NewTaxScheduleRepository creates a repository holding copies of schedules.
func NewTaxScheduleRepository(schedules []domain.CountryTaxSchedule) *TaxScheduleRepository {
	r := &TaxScheduleRepository{schedules: make(map[string]domain.CountryTaxSchedule, len(schedules))}
	for _, s := range schedules {
		r.schedules[s.Country] = s.Clone()
	}
	return r
}

// NewTaxScheduleRepositoryFromFile loads path into a new repository.
func NewTaxScheduleRepositoryFromFile(path string) (*TaxScheduleRepository, error) {
	schedules, err := LoadTaxSchedules(path)
	if err != nil {
		return nil, err
	}
	return NewTaxScheduleRepository(schedules), nil
}

func (r *TaxScheduleRepository) FindTaxSchedule(_ context.Context, country string) (*domain.CountryTaxSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[country]
	if !ok {
		return nil, fmt.Errorf("%w: tax schedule for %q", apperrors.ErrNotFound, country)
	}
	out := s.Clone()
	return &out, nil
}

func (r *TaxScheduleRepository) ListTaxSchedules(_ context.Context) ([]domain.CountryTaxSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CountryTaxSchedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		out = append(out, s.Clone())
	}
	slices.SortFunc(out, func(a, b domain.CountryTaxSchedule) int {
		return strings.Compare(a.Country, b.Country)
	})
	return out, nil
}

func (r *TaxScheduleRepository) SaveTaxSchedule(_ context.Context, schedule domain.CountryTaxSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schedules[schedule.Country] = schedule.Clone()
	return nil
}
