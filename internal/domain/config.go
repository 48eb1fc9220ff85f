package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBusinessHours возвращается при некорректной конфигурации рабочих часов
var ErrInvalidBusinessHours = errors.New("domain: invalid business hours")

// BusinessHours конфигурация рабочего времени автосервиса
// Неизменяема в течение жизни процесса
type BusinessHours struct {
	Location                   *time.Location
	StartHour                  int // час открытия (8 = 08:00)
	EndHour                    int // час закрытия (17 = 17:00)
	AppointmentDurationMinutes int
	BufferMinutes              int // пауза между началами соседних слотов сверх длительности
	WorkingDays                []time.Weekday
}

// DefaultBusinessHours рабочее время по умолчанию: пн-пт 08:00-17:00, запись на 60 минут, буфер 15 минут
func DefaultBusinessHours(loc *time.Location) BusinessHours {
	return BusinessHours{
		Location:                   loc,
		StartHour:                  DefaultStartHour,
		EndHour:                    DefaultEndHour,
		AppointmentDurationMinutes: DefaultAppointmentDurationMinutes,
		BufferMinutes:              DefaultBufferMinutes,
		WorkingDays:                DefaultWorkingDays(),
	}
}

// Validate проверяет инварианты конфигурации
func (c BusinessHours) Validate() error {
	if c.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidBusinessHours)
	}
	if c.StartHour < 0 || c.EndHour > 24 || c.StartHour >= c.EndHour {
		return fmt.Errorf("%w: start hour %d must be before end hour %d", ErrInvalidBusinessHours, c.StartHour, c.EndHour)
	}
	if c.AppointmentDurationMinutes <= 0 {
		return fmt.Errorf("%w: appointment duration must be positive", ErrInvalidBusinessHours)
	}
	if c.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative", ErrInvalidBusinessHours)
	}
	if len(c.WorkingDays) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidBusinessHours)
	}
	return nil
}

// IsWorkingDay true, если день недели рабочий
func (c BusinessHours) IsWorkingDay(day time.Weekday) bool {
	for _, wd := range c.WorkingDays {
		if wd == day {
			return true
		}
	}
	return false
}

// AppointmentDuration длительность одной записи
func (c BusinessHours) AppointmentDuration() time.Duration {
	return time.Duration(c.AppointmentDurationMinutes) * time.Minute
}

// Stride шаг между началами соседних слотов
func (c BusinessHours) Stride() time.Duration {
	return time.Duration(c.AppointmentDurationMinutes+c.BufferMinutes) * time.Minute
}
