package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/policy"
)

// Book создает запись в календаре
// Проверка свободности и создание события не атомарны: если между ними время заняли,
// календарь вернет конфликт при вставке, и он тоже отдается как ErrSlotConflict
func (s *Service) Book(ctx context.Context, req *models.BookRequest) (*models.AppointmentResponse, error) {
	resp, err := s.book(ctx, req)
	s.record("book", err)
	return resp, err
}

func (s *Service) book(ctx context.Context, req *models.BookRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Book: customer=%s, phone=%s", req.CustomerName, req.CustomerPhone)

	// 1. Валидация входных данных
	if err := validateBookRequest(req); err != nil {
		s.logger.Warn("Book: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем окно записи
	start, end, err := s.resolveWindow(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Повторная проверка свободности прямо перед созданием
	available, err := s.IsSlotAvailable(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if !available {
		s.logger.Warn("Book: slot %s is already taken", start.Format(domain.DisplayFormat))
		return nil, fmt.Errorf("%w: %s", ErrSlotConflict, start.Format(domain.DisplayFormat))
	}

	// 4. Создаем событие; данные клиента только в описании и private properties
	appointment := domain.Appointment{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		CustomerEmail: req.CustomerEmail,
		ServiceType:   req.ServiceType,
		VehicleInfo:   req.VehicleInfo,
		Notes:         req.Notes,
		Start:         start,
		End:           end,
		Status:        domain.StatusConfirmed,
	}

	gctx, cancel := s.withTimeout(ctx)
	defer cancel()

	created, err := s.gateway.InsertEvent(gctx, appointment.ToEvent(s.Location(), s.cfg.Reminders))
	if err != nil {
		return nil, s.gatewayError("Book", err)
	}

	s.logger.Info("Book: successfully created appointment id=%s at %s", created.ID, start.Format(domain.DisplayFormat))
	return models.FromDomainAppointment(domain.AppointmentFromEvent(created), s.Location()), nil
}

// resolveWindow выбирает время записи
// Указаны и дата, и время - проверяем правила; иначе берем ближайший свободный слот
func (s *Service) resolveWindow(ctx context.Context, req *models.BookRequest) (time.Time, time.Time, error) {
	duration := s.cfg.Business.AppointmentDuration()

	if req.PreferredDate != nil && req.PreferredTime != nil {
		start := req.PreferredTime.On(*req.PreferredDate, s.Location())
		if err := policy.Validate(start, s.timeProvider.Now(), s.cfg.Business); err != nil {
			s.logger.Warn("Book: requested time %s rejected: %v", start.Format(domain.DisplayFormat), err)
			return time.Time{}, time.Time{}, err
		}
		return start, start.Add(duration), nil
	}

	next, err := s.findNext(ctx, s.cfg.SearchDays)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	s.logger.Info("Book: no preferred time, using next free slot %s", next.Slot.Start.Format(domain.DisplayFormat))
	return next.Slot.Start, next.Slot.End, nil
}

func validateBookRequest(req *models.BookRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if req.PreferredTime != nil {
		if err := req.PreferredTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid preferredTime: %v", ErrInvalidInput, err)
		}
	}
	return nil
}
