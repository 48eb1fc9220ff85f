package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для метрик вызовов календаря
type Metrics interface {
	ObserveGatewayCall(operation, outcome string, d time.Duration)
}

// Config параметры подключения к календарю
type Config struct {
	CalendarID      string
	CredentialsJSON string // JSON ключа сервисного аккаунта, приоритетнее файла
	CredentialsFile string // путь к JSON ключу
	Location        *time.Location
}

// Client клиент Google Calendar API для одного календаря
// Подключение создается лениво в EnsureReady и дальше переиспользуется
type Client struct {
	cfg     Config
	opts    []option.ClientOption
	metrics Metrics
	log     Logger

	mu  sync.Mutex
	svc *calendar.Service
}

// NewClient создает новый экземпляр клиента календаря
// Дополнительные опции передаются в calendar.NewService как есть (endpoint, http client и т.п.)
func NewClient(cfg Config, metrics Metrics, log Logger, opts ...option.ClientOption) *Client {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Client{
		cfg:     cfg,
		opts:    opts,
		metrics: metrics,
		log:     log,
	}
}

// EnsureReady создает подключение к API, если его еще нет
// Повторные вызовы после успешного подключения ничего не делают
func (c *Client) EnsureReady(ctx context.Context) error {
	_, err := c.service(ctx)
	return err
}

// Ready true, если подключение уже создано
func (c *Client) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.svc != nil
}

// CalendarID идентификатор календаря, с которым работает клиент
func (c *Client) CalendarID() string {
	return c.cfg.CalendarID
}

func (c *Client) service(ctx context.Context) (*calendar.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil {
		return c.svc, nil
	}

	opts := []option.ClientOption{option.WithScopes(calendar.CalendarScope, calendar.CalendarEventsScope)}
	switch {
	case c.cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(c.cfg.CredentialsJSON)))
	case c.cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(c.cfg.CredentialsFile))
	case len(c.opts) == 0:
		return nil, ErrCredentialsMissing
	}
	opts = append(opts, c.opts...)

	// Источник токенов живет дольше запроса, поэтому отвязываемся от его отмены
	svc, err := calendar.NewService(context.WithoutCancel(ctx), opts...)
	if err != nil {
		c.log.Error("Failed to initialize Google Calendar client: %v", err)
		return nil, fmt.Errorf("%w: failed to create service: %v", ErrUnavailable, err)
	}

	c.log.Info("Google Calendar client initialized for calendar=%s", c.cfg.CalendarID)
	c.svc = svc
	return svc, nil
}

// QueryFreeBusy возвращает занятые интервалы календаря в окне [timeMin, timeMax]
func (c *Client) QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time) (busy []domain.BusyInterval, err error) {
	defer c.observe("freebusy", time.Now(), &err)

	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	req := &calendar.FreeBusyRequest{
		TimeMin:  timeMin.Format(time.RFC3339),
		TimeMax:  timeMax.Format(time.RFC3339),
		TimeZone: c.cfg.Location.String(),
		Items:    []*calendar.FreeBusyRequestItem{{Id: c.cfg.CalendarID}},
	}

	resp, err := svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, mapError("freebusy", err)
	}

	cal, ok := resp.Calendars[c.cfg.CalendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s missing in free/busy response", ErrInvalidResponse, c.cfg.CalendarID)
	}
	// Ошибки по календарю (нет доступа, не найден) означают, что занятость неизвестна
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("%w: free/busy error for calendar %s: %s", ErrUnavailable, c.cfg.CalendarID, cal.Errors[0].Reason)
	}

	return toBusyIntervals(cal.Busy, c.cfg.Location)
}

// InsertEvent создает событие и возвращает его с назначенным ID
func (c *Client) InsertEvent(ctx context.Context, ev *domain.CalendarEvent) (created *domain.CalendarEvent, err error) {
	defer c.observe("insert", time.Now(), &err)

	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	out, err := svc.Events.Insert(c.cfg.CalendarID, toAPIEvent(ev)).Context(ctx).Do()
	if err != nil {
		return nil, mapError("insert", err)
	}

	return fromAPIEvent(out, c.cfg.Location)
}

// GetEvent получает событие по ID
func (c *Client) GetEvent(ctx context.Context, eventID string) (ev *domain.CalendarEvent, err error) {
	defer c.observe("get", time.Now(), &err)

	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	out, err := svc.Events.Get(c.cfg.CalendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, mapError("get", err)
	}
	// Удаленные события API может отдавать со статусом cancelled
	if out.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: event %s is cancelled", ErrEventNotFound, eventID)
	}

	return fromAPIEvent(out, c.cfg.Location)
}

// UpdateEvent обновляет событие через patch: поля, которых нет в domain.CalendarEvent
// (место, участники, цвет и т.п.), календарь оставляет как есть
func (c *Client) UpdateEvent(ctx context.Context, eventID string, ev *domain.CalendarEvent) (updated *domain.CalendarEvent, err error) {
	defer c.observe("update", time.Now(), &err)

	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	out, err := svc.Events.Patch(c.cfg.CalendarID, eventID, toAPIEvent(ev)).Context(ctx).Do()
	if err != nil {
		return nil, mapError("update", err)
	}

	return fromAPIEvent(out, c.cfg.Location)
}

// DeleteEvent удаляет событие
func (c *Client) DeleteEvent(ctx context.Context, eventID string) (err error) {
	defer c.observe("delete", time.Now(), &err)

	svc, err := c.service(ctx)
	if err != nil {
		return err
	}

	if err := svc.Events.Delete(c.cfg.CalendarID, eventID).Context(ctx).Do(); err != nil {
		return mapError("delete", err)
	}
	return nil
}

// ListEvents возвращает события в окне [timeMin, timeMax], развернутые и отсортированные по началу
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) (events []*domain.CalendarEvent, err error) {
	defer c.observe("list", time.Now(), &err)

	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	call := svc.Events.List(c.cfg.CalendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	events = make([]*domain.CalendarEvent, 0)
	err = call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			if item.Status == domain.StatusCancelled {
				continue
			}
			ev, err := fromAPIEvent(item, c.cfg.Location)
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidResponse) {
			return nil, err
		}
		return nil, mapError("list", err)
	}

	return events, nil
}

// observe пишет метрику вызова; err читается после выполнения метода
func (c *Client) observe(operation string, started time.Time, err *error) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveGatewayCall(operation, outcome(*err), time.Since(started))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEventNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// mapError переводит ошибки API в ошибки клиента
func mapError(operation string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound, http.StatusGone:
			return fmt.Errorf("%w: %s: %v", ErrEventNotFound, operation, err)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s: %v", ErrConflict, operation, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, operation, err)
}
