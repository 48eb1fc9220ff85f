package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/policy"
)

// Update частично обновляет запись: меняются только переданные поля
// Если меняется время, новое окно проверяется так же, как при создании,
// а конец всегда равен началу плюс длительность записи
func (s *Service) Update(ctx context.Context, eventID string, patch domain.AppointmentPatch) (*models.AppointmentResponse, error) {
	resp, err := s.update(ctx, eventID, patch)
	s.record("update", err)
	return resp, err
}

func (s *Service) update(ctx context.Context, eventID string, patch domain.AppointmentPatch) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%s", eventID)

	// 1. Валидация входных данных
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if patch.CustomerName != nil && strings.TrimSpace(*patch.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customerName must not be empty", ErrInvalidInput)
	}
	if patch.CustomerPhone != nil && strings.TrimSpace(*patch.CustomerPhone) == "" {
		return nil, fmt.Errorf("%w: customerPhone must not be empty", ErrInvalidInput)
	}

	// 2. Читаем текущее событие
	gctx, cancel := s.withTimeout(ctx)
	current, err := s.gateway.GetEvent(gctx, eventID)
	cancel()
	if err != nil {
		return nil, s.gatewayError("Update", err)
	}

	existing := domain.AppointmentFromEvent(current)
	merged := existing.Apply(patch)
	if merged.Status == "" {
		merged.Status = domain.StatusConfirmed
	}

	// 3. Новое окно: конец всегда начало + длительность записи
	if patch.ChangesWindow() {
		if current.AllDay {
			return nil, fmt.Errorf("%w: all-day event time cannot be changed", ErrInvalidInput)
		}

		start := existing.Start
		if patch.Start != nil {
			start = *patch.Start
		}
		end := start.Add(s.cfg.Business.AppointmentDuration())
		if patch.End != nil && !patch.End.Equal(end) {
			return nil, fmt.Errorf("%w: end must be %s", ErrInvalidInput, end.In(s.Location()).Format(domain.DisplayFormat))
		}
		merged.Start, merged.End = start, end
	}

	// 4. Время изменилось - проверяем правила и свободность нового окна
	if !merged.Start.Equal(existing.Start) || !merged.End.Equal(existing.End) {
		if err := policy.Validate(merged.Start, s.timeProvider.Now(), s.cfg.Business); err != nil {
			s.logger.Warn("Update: new time %s rejected: %v", merged.Start.Format(domain.DisplayFormat), err)
			return nil, err
		}

		busy, err := s.queryBusy(ctx, merged.Start, merged.End)
		if err != nil {
			return nil, err
		}
		// Занятость, целиком лежащая внутри текущего окна записи, - это она сама
		own := domain.BusyInterval{Start: existing.Start, End: existing.End}
		for _, b := range busy {
			if within(b, own) {
				continue
			}
			s.logger.Warn("Update: new time %s is already taken", merged.Start.Format(domain.DisplayFormat))
			return nil, fmt.Errorf("%w: %s", ErrSlotConflict, merged.Start.Format(domain.DisplayFormat))
		}
	}

	// 5. Накладываем изменения на текущее событие, остальные его поля сохраняются
	ev := current.Patched(merged, patch, s.Location())

	gctx, cancel = s.withTimeout(ctx)
	defer cancel()

	updated, err := s.gateway.UpdateEvent(gctx, eventID, ev)
	if err != nil {
		return nil, s.gatewayError("Update", err)
	}

	s.logger.Info("Update: successfully updated appointment id=%s", eventID)
	return models.FromDomainAppointment(domain.AppointmentFromEvent(updated), s.Location()), nil
}

// Cancel удаляет запись из календаря
// Уже удаленная запись возвращает ErrNotFound, а не успех
func (s *Service) Cancel(ctx context.Context, eventID string) error {
	err := s.cancel(ctx, eventID)
	s.record("cancel", err)
	return err
}

func (s *Service) cancel(ctx context.Context, eventID string) error {
	s.logger.Info("Cancel: cancelling appointment id=%s", eventID)

	if eventID == "" {
		return fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}

	gctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.gateway.DeleteEvent(gctx, eventID); err != nil {
		return s.gatewayError("Cancel", err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", eventID)
	return nil
}

// within true, если интервал b целиком внутри окна own
func within(b, own domain.BusyInterval) bool {
	return !b.Start.Before(own.Start) && !b.End.After(own.End)
}
