package googlecalendar

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

// toAPIEvent конвертирует событие домена в модель Calendar API
func toAPIEvent(ev *domain.CalendarEvent) *calendar.Event {
	out := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Status:      ev.Status,
		Start:       toEventTime(ev.Start, ev.TimeZone, ev.AllDay),
		End:         toEventTime(ev.End, ev.TimeZone, ev.AllDay),
	}

	if len(ev.Private) > 0 {
		out.ExtendedProperties = &calendar.EventExtendedProperties{Private: ev.Private}
	}

	// Без явных напоминаний календарь применяет свои по умолчанию
	if len(ev.Reminders) > 0 {
		overrides := make([]*calendar.EventReminder, 0, len(ev.Reminders))
		for _, r := range ev.Reminders {
			overrides = append(overrides, &calendar.EventReminder{Method: r.Method, Minutes: int64(r.Minutes)})
		}
		out.Reminders = &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		}
	}

	return out
}

// toEventTime у событий на весь день заполняется только дата
func toEventTime(t time.Time, timeZone string, allDay bool) *calendar.EventDateTime {
	if allDay {
		return &calendar.EventDateTime{Date: t.Format(domain.DateFormat)}
	}
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: timeZone,
	}
}

// fromAPIEvent конвертирует модель Calendar API в событие домена
func fromAPIEvent(ev *calendar.Event, loc *time.Location) (*domain.CalendarEvent, error) {
	start, err := parseEventTime(ev.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s start: %v", ErrInvalidResponse, ev.Id, err)
	}
	end, err := parseEventTime(ev.End, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s end: %v", ErrInvalidResponse, ev.Id, err)
	}

	out := &domain.CalendarEvent{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       start,
		End:         end,
		Status:      ev.Status,
		HTMLLink:    ev.HtmlLink,
	}
	if ev.Start != nil {
		out.TimeZone = ev.Start.TimeZone
		out.AllDay = ev.Start.DateTime == ""
	}
	if ev.ExtendedProperties != nil {
		out.Private = ev.ExtendedProperties.Private
	}
	if ev.Reminders != nil {
		for _, r := range ev.Reminders.Overrides {
			out.Reminders = append(out.Reminders, domain.Reminder{Method: r.Method, Minutes: int(r.Minutes)})
		}
	}

	return out, nil
}

// parseEventTime разбирает время события
// У событий на весь день заполнено только поле Date, его считаем полуночью в зоне сервиса
func parseEventTime(dt *calendar.EventDateTime, loc *time.Location) (time.Time, error) {
	if dt == nil {
		return time.Time{}, errors.New("missing time")
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(loc), nil
	}
	return time.ParseInLocation(domain.DateFormat, dt.Date, loc)
}

// toBusyIntervals конвертирует периоды free/busy ответа в интервалы домена
// Некорректные и пустые периоды отбрасываются
func toBusyIntervals(periods []*calendar.TimePeriod, loc *time.Location) ([]domain.BusyInterval, error) {
	result := make([]domain.BusyInterval, 0, len(periods))
	for _, p := range periods {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: busy start %q: %v", ErrInvalidResponse, p.Start, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("%w: busy end %q: %v", ErrInvalidResponse, p.End, err)
		}

		interval := domain.BusyInterval{Start: start.In(loc), End: end.In(loc)}
		if interval.IsValid() {
			result = append(result, interval)
		}
	}
	return result, nil
}
