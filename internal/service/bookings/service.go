package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	calendarClient "github.com/m04kA/SMC-AutoservisBooking/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/policy"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/slots"
)

const defaultGatewayTimeout = 10 * time.Second

// Config параметры оркестратора
type Config struct {
	Business       domain.BusinessHours
	SearchDays     int
	ListDays       int
	GatewayTimeout time.Duration
	Reminders      []domain.Reminder
}

// Service оркестратор записей: правила, слоты и календарь
// Своего состояния о записях не хранит, каждое чтение идет в календарь
type Service struct {
	gateway      CalendarGateway
	cfg          Config
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	gateway CalendarGateway,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *Service {
	if cfg.SearchDays <= 0 {
		cfg.SearchDays = domain.DefaultSearchDays
	}
	if cfg.ListDays <= 0 {
		cfg.ListDays = domain.DefaultListDays
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	return &Service{
		gateway:      gateway,
		cfg:          cfg,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Location зона, в которой считаются рабочие часы
func (s *Service) Location() *time.Location {
	return s.cfg.Business.Location
}

// CheckAvailability возвращает свободные слоты на дату
// Пустой список - нормальный результат
func (s *Service) CheckAvailability(ctx context.Context, date time.Time) (*models.AvailabilityResponse, error) {
	day := date.In(s.Location())
	s.logger.Info("CheckAvailability: date=%s", day.Format(domain.DateFormat))

	list, err := s.daySlots(ctx, day)
	if err != nil {
		s.record("check_availability", err)
		return nil, err
	}

	s.logger.Info("CheckAvailability: %d free slots on %s", len(list), day.Format(domain.DateFormat))
	s.record("check_availability", nil)
	return &models.AvailabilityResponse{
		Date:  day.Format(domain.DateFormat),
		Slots: models.FromDomainSlots(list),
	}, nil
}

// FindNext ищет ближайший день со свободным временем
func (s *Service) FindNext(ctx context.Context, searchDays int) (*models.NextAvailableResponse, error) {
	next, err := s.findNext(ctx, searchDays)
	if err != nil {
		s.record("find_next", err)
		return nil, err
	}

	s.record("find_next", nil)
	return &models.NextAvailableResponse{
		Date:  next.Date.Format(domain.DateFormat),
		Slot:  models.FromDomainSlot(next.Slot),
		Slots: models.FromDomainSlots(next.Slots),
	}, nil
}

// IsSlotAvailable проверяет одним free/busy запросом, что окно [start, end] свободно
func (s *Service) IsSlotAvailable(ctx context.Context, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	busy, err := s.queryBusy(ctx, start, end)
	if err != nil {
		return false, err
	}
	return len(busy) == 0, nil
}

// CheckSlot проверяет правила и свободность записи, начинающейся в start
// Нарушение правил возвращается ошибкой policy
func (s *Service) CheckSlot(ctx context.Context, start time.Time) (*models.SlotCheckResponse, error) {
	s.logger.Info("CheckSlot: start=%s", start.In(s.Location()).Format(domain.DisplayFormat))

	if err := policy.Validate(start, s.timeProvider.Now(), s.cfg.Business); err != nil {
		s.logger.Warn("CheckSlot: policy violation: %v", err)
		s.record("check_slot", err)
		return nil, err
	}

	slot := domain.Slot{Start: start.In(s.Location()), End: start.In(s.Location()).Add(s.cfg.Business.AppointmentDuration())}
	available, err := s.IsSlotAvailable(ctx, slot.Start, slot.End)
	if err != nil {
		s.record("check_slot", err)
		return nil, err
	}

	s.record("check_slot", nil)
	return &models.SlotCheckResponse{
		Available: available,
		Slot:      models.FromDomainSlot(slot),
	}, nil
}

// Get возвращает запись по ID события
func (s *Service) Get(ctx context.Context, eventID string) (*models.AppointmentResponse, error) {
	s.logger.Info("Get: fetching appointment id=%s", eventID)

	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}

	gctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ev, err := s.gateway.GetEvent(gctx, eventID)
	if err != nil {
		err = s.gatewayError("Get", err)
		s.record("get", err)
		return nil, err
	}

	s.record("get", nil)
	return models.FromDomainAppointment(domain.AppointmentFromEvent(ev), s.Location()), nil
}

// List возвращает записи за период, по умолчанию с сегодняшнего дня на ListDays вперед
// Фильтр по телефону применяется к private properties события
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	loc := s.Location()
	now := s.timeProvider.Now().In(loc)

	from := startOfDay(now, loc)
	if req.StartDate != nil {
		from = startOfDay(*req.StartDate, loc)
	}
	to := from.AddDate(0, 0, s.cfg.ListDays)
	if req.EndDate != nil {
		// конец периода включительно
		to = startOfDay(*req.EndDate, loc).AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}

	s.logger.Info("List: fetching appointments from %s to %s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	gctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.gateway.ListEvents(gctx, from, to)
	if err != nil {
		err = s.gatewayError("List", err)
		s.record("list", err)
		return nil, err
	}

	list := make([]domain.Appointment, 0, len(events))
	for _, ev := range events {
		a := domain.AppointmentFromEvent(ev)
		if req.CustomerPhone != nil && *req.CustomerPhone != "" && a.CustomerPhone != *req.CustomerPhone {
			continue
		}
		list = append(list, a)
	}

	s.logger.Info("List: found %d appointments", len(list))
	s.record("list", nil)
	return models.FromDomainAppointmentList(list, loc), nil
}

// Вспомогательные методы

// daySlots свободные слоты дня, только начинающиеся после текущего момента
// Для выходного календарь не запрашивается
func (s *Service) daySlots(ctx context.Context, day time.Time) ([]domain.Slot, error) {
	if !s.cfg.Business.IsWorkingDay(day.Weekday()) {
		return []domain.Slot{}, nil
	}

	from, to := slots.DayBounds(day, s.cfg.Business)
	busy, err := s.queryBusy(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return slots.FilterAfter(slots.EnumerateSlots(day, busy, s.cfg.Business), s.timeProvider.Now()), nil
}

// findNext поиск ближайшего слота; ничего не найдено - ErrNoAvailableSlot
func (s *Service) findNext(ctx context.Context, searchDays int) (*slots.NextAvailable, error) {
	if searchDays <= 0 {
		searchDays = s.cfg.SearchDays
	}
	if searchDays > domain.MaxSearchDays {
		return nil, fmt.Errorf("%w: searchDays must not exceed %d", ErrInvalidInput, domain.MaxSearchDays)
	}

	s.logger.Info("FindNext: searching %d days ahead", searchDays)

	next, err := slots.FindNextAvailable(ctx, s.timeProvider.Now(), searchDays, s.cfg.Business, s.queryBusy)
	if err != nil {
		return nil, err
	}
	if next == nil {
		s.logger.Warn("FindNext: no free slot within %d days", searchDays)
		return nil, fmt.Errorf("%w: within %d days", ErrNoAvailableSlot, searchDays)
	}

	s.logger.Info("FindNext: first free slot %s", next.Slot.Start.Format(domain.DisplayFormat))
	return next, nil
}

// queryBusy free/busy запрос к календарю с таймаутом
func (s *Service) queryBusy(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error) {
	gctx, cancel := s.withTimeout(ctx)
	defer cancel()

	busy, err := s.gateway.QueryFreeBusy(gctx, from, to)
	if err != nil {
		return nil, s.gatewayError("QueryFreeBusy", err)
	}
	return busy, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.GatewayTimeout)
}

// gatewayError переводит ошибки календаря в ошибки сервиса
func (s *Service) gatewayError(op string, err error) error {
	switch {
	case errors.Is(err, calendarClient.ErrEventNotFound):
		s.logger.Warn("%s: event not found: %v", op, err)
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case errors.Is(err, calendarClient.ErrConflict):
		s.logger.Warn("%s: calendar reported conflict: %v", op, err)
		return fmt.Errorf("%w: %s - calendar reported conflict", ErrSlotConflict, op)
	default:
		s.logger.Error("%s: calendar error: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrGatewayUnavailable, op, err)
	}
}

// record пишет исход операции в метрики
func (s *Service) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncBookingOutcome(operation, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case policy.IsViolation(err):
		return "policy_violation"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrSlotConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoAvailableSlot):
		return "no_slot"
	default:
		return "unavailable"
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
