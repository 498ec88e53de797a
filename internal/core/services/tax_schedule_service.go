package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/core/taxengine"
	"github.com/SscSPs/tax_compare_app/internal/dto"
)

// seedActor is recorded as the author of schedules loaded from the data file.
const seedActor = "system:seed"

type taxScheduleService struct {
	BaseService
	scheduleRepo portsrepo.TaxScheduleRepositoryFacade
	now          func() time.Time
}

// NewTaxScheduleService creates a service over the given schedule repository.
func NewTaxScheduleService(scheduleRepo portsrepo.TaxScheduleRepositoryFacade) portssvc.TaxScheduleSvcFacade {
	return &taxScheduleService{scheduleRepo: scheduleRepo, now: time.Now}
}

var _ portssvc.TaxScheduleSvcFacade = (*taxScheduleService)(nil)

// GetTaxSchedule retrieves the schedule of a country.
func (s *taxScheduleService) GetTaxSchedule(ctx context.Context, country string) (*domain.CountryTaxSchedule, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", apperrors.ErrValidation)
	}
	schedule, err := s.scheduleRepo.FindTaxSchedule(ctx, country)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load tax schedule", slog.String("country", country))
		}
		return nil, fmt.Errorf("failed to get tax schedule for %q: %w", country, err)
	}
	return schedule, nil
}

// ListTaxSchedules retrieves every schedule ordered by country.
func (s *taxScheduleService) ListTaxSchedules(ctx context.Context) ([]domain.CountryTaxSchedule, error) {
	schedules, err := s.scheduleRepo.ListTaxSchedules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tax schedules")
		return nil, fmt.Errorf("failed to list tax schedules: %w", err)
	}
	slices.SortFunc(schedules, func(a, b domain.CountryTaxSchedule) int {
		return strings.Compare(a.Country, b.Country)
	})
	return schedules, nil
}

// SaveTaxSchedule validates and stores the schedule of a country.
func (s *taxScheduleService) SaveTaxSchedule(ctx context.Context, country string, req dto.SaveTaxScheduleRequest, userID string) (*domain.CountryTaxSchedule, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", apperrors.ErrValidation)
	}
	brackets := dto.ToDomainTaxBrackets(req.Schedule)
	if err := taxengine.ValidateBrackets(brackets); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	now := s.now().UTC()
	schedule := domain.CountryTaxSchedule{
		Country:  country,
		Currency: strings.ToUpper(req.Currency),
		Brackets: brackets,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	existing, err := s.scheduleRepo.FindTaxSchedule(ctx, country)
	switch {
	case err == nil:
		schedule.CreatedAt = existing.CreatedAt
		schedule.CreatedBy = existing.CreatedBy
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up existing tax schedule", slog.String("country", country))
		return nil, fmt.Errorf("failed to save tax schedule for %q: %w", country, err)
	}

	if err := s.scheduleRepo.SaveTaxSchedule(ctx, schedule); err != nil {
		s.LogError(ctx, err, "Failed to save tax schedule", slog.String("country", country))
		return nil, fmt.Errorf("failed to save tax schedule for %q: %w", country, err)
	}

	s.LogInfo(ctx, "Tax schedule saved",
		slog.String("country", country),
		slog.String("currency", schedule.Currency),
		slog.Int("brackets", len(brackets)),
		slog.String("user_id", userID))
	return &schedule, nil
}

// SeedTaxSchedules stores schedules for countries the repository does not know yet.
// Malformed schedules are logged and skipped so one bad entry cannot block the rest.
func (s *taxScheduleService) SeedTaxSchedules(ctx context.Context, schedules []domain.CountryTaxSchedule) (int, error) {
	added, skipped := 0, 0
	for _, schedule := range schedules {
		if err := taxengine.ValidateBrackets(schedule.Brackets); err != nil {
			s.LogWarn(ctx, err, "Skipping malformed tax schedule", slog.String("country", schedule.Country))
			skipped++
			continue
		}

		_, err := s.scheduleRepo.FindTaxSchedule(ctx, schedule.Country)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return added, fmt.Errorf("failed to seed tax schedule for %q: %w", schedule.Country, err)
		}

		now := s.now().UTC()
		seeded := schedule.Clone()
		seeded.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     seedActor,
			LastUpdatedAt: now,
			LastUpdatedBy: seedActor,
		}
		if err := s.scheduleRepo.SaveTaxSchedule(ctx, seeded); err != nil {
			return added, fmt.Errorf("failed to seed tax schedule for %q: %w", schedule.Country, err)
		}
		added++
	}
	s.LogInfo(ctx, "Tax schedules seeded",
		slog.Int("added", added),
		slog.Int("skipped", skipped),
		slog.Int("available", len(schedules)))
	return added, nil
}
