package bookings

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
)

// FindAlternative подбирает до MaxAlternatives свободных слотов под предпочтение клиента
// Сначала смотрим указанную дату (ближайшие к указанному времени), затем следующие дни
func (s *Service) FindAlternative(ctx context.Context, req *models.AlternativeRequest) (*models.AlternativesResponse, error) {
	resp, err := s.findAlternative(ctx, req)
	s.record("find_alternative", err)
	return resp, err
}

func (s *Service) findAlternative(ctx context.Context, req *models.AlternativeRequest) (*models.AlternativesResponse, error) {
	// 1. Валидация входных данных
	preference := req.Preference
	if preference == "" {
		preference = domain.PreferenceAny
	}
	if !preference.IsValid() {
		return nil, fmt.Errorf("%w: unknown timePreference %q", ErrInvalidInput, req.Preference)
	}
	if req.Time != nil {
		if err := req.Time.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
	}

	searchDays := req.SearchDays
	if searchDays <= 0 {
		searchDays = s.cfg.SearchDays
	}
	if searchDays > domain.MaxSearchDays {
		return nil, fmt.Errorf("%w: searchDays must not exceed %d", ErrInvalidInput, domain.MaxSearchDays)
	}

	loc := s.Location()
	s.logger.Info("FindAlternative: preference=%s, searchDays=%d", preference, searchDays)

	// 2. Указанная дата
	from := startOfDay(s.timeProvider.Now(), loc)
	if req.Date != nil {
		day := startOfDay(*req.Date, loc)

		list, err := s.daySlots(ctx, day)
		if err != nil {
			return nil, err
		}
		list = filterPreference(list, preference)
		if req.Time != nil {
			sortByDistance(list, req.Time.On(day, loc))
		}
		if len(list) > 0 {
			return s.alternatives(list), nil
		}

		if day.After(from) {
			from = day.AddDate(0, 0, 1)
		} else {
			from = from.AddDate(0, 0, 1)
		}
	}

	// 3. Следующие дни в пределах окна поиска
	for i := 0; i < searchDays; i++ {
		day := from.AddDate(0, 0, i)

		list, err := s.daySlots(ctx, day)
		if err != nil {
			return nil, err
		}
		list = filterPreference(list, preference)
		if len(list) > 0 {
			return s.alternatives(list), nil
		}
	}

	s.logger.Warn("FindAlternative: nothing found for preference=%s within %d days", preference, searchDays)
	return nil, fmt.Errorf("%w: preference %s within %d days", ErrNoAvailableSlot, preference, searchDays)
}

func (s *Service) alternatives(list []domain.Slot) *models.AlternativesResponse {
	if len(list) > domain.MaxAlternatives {
		list = list[:domain.MaxAlternatives]
	}
	s.logger.Info("FindAlternative: found %d alternatives starting %s", len(list), list[0].Start.Format(domain.DisplayFormat))
	return &models.AlternativesResponse{Alternatives: models.FromDomainSlots(list)}
}

func filterPreference(list []domain.Slot, preference domain.TimePreference) []domain.Slot {
	result := make([]domain.Slot, 0, len(list))
	for _, slot := range list {
		if preference.Matches(slot) {
			result = append(result, slot)
		}
	}
	return result
}

// sortByDistance сортирует слоты по удаленности начала от target, при равенстве раньше идет более ранний
func sortByDistance(list []domain.Slot, target time.Time) {
	sort.SliceStable(list, func(i, j int) bool {
		return absDuration(list[i].Start.Sub(target)) < absDuration(list[j].Start.Sub(target))
	})
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
