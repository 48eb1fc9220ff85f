package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

// CalendarGateway интерфейс внешнего календаря, единственного источника истины о записях
type CalendarGateway interface {
	QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time) ([]domain.BusyInterval, error)
	InsertEvent(ctx context.Context, ev *domain.CalendarEvent) (*domain.CalendarEvent, error)
	GetEvent(ctx context.Context, eventID string) (*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, eventID string, ev *domain.CalendarEvent) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error)
}

// Metrics интерфейс для метрик исходов операций
type Metrics interface {
	IncBookingOutcome(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
