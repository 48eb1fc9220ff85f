package policy

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

var (
	// ErrNonWorkingDay возвращается, когда день недели не рабочий
	ErrNonWorkingDay = errors.New("policy: non-working day")

	// ErrOutsideBusinessHours возвращается, когда время начала вне рабочих часов
	ErrOutsideBusinessHours = errors.New("policy: outside business hours")

	// ErrInThePast возвращается, когда время начала уже прошло
	ErrInThePast = errors.New("policy: start time is in the past")
)

// Validate проверяет время начала записи по правилам сервиса
// Проверки идут по порядку, возвращается первое нарушение
func Validate(start, now time.Time, cfg domain.BusinessHours) error {
	local := start.In(cfg.Location)

	// Шаг 1: рабочий день
	if !cfg.IsWorkingDay(local.Weekday()) {
		return fmt.Errorf("%w: %s", ErrNonWorkingDay, local.Weekday())
	}

	// Шаг 2: рабочие часы, ровно час закрытия еще допускается
	hour, minute := local.Hour(), local.Minute()
	if hour < cfg.StartHour || hour > cfg.EndHour || (hour == cfg.EndHour && minute > 0) {
		return fmt.Errorf("%w: %s not within %02d:00-%02d:00",
			ErrOutsideBusinessHours, local.Format(domain.TimeFormat), cfg.StartHour, cfg.EndHour)
	}

	// Шаг 3: не в прошлом
	if start.Before(now) {
		return fmt.Errorf("%w: %s", ErrInThePast, local.Format(domain.DisplayFormat))
	}

	return nil
}

// IsViolation true, если ошибка - нарушение правил записи
func IsViolation(err error) bool {
	return errors.Is(err, ErrNonWorkingDay) ||
		errors.Is(err, ErrOutsideBusinessHours) ||
		errors.Is(err, ErrInThePast)
}
