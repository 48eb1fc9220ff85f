package domain

import "time"

// Значения конфигурации по умолчанию
const (
	DefaultTimezone                   = "Europe/Bratislava"
	DefaultStartHour                  = 8
	DefaultEndHour                    = 17
	DefaultAppointmentDurationMinutes = 60
	DefaultBufferMinutes              = 15
	DefaultSearchDays                 = 14
	DefaultListDays                   = 30
	MaxSearchDays                     = 90
	MaxAlternatives                   = 3
)

// Граница между утром и второй половиной дня для find_alternative
const AfternoonStartHour = 12

// Форматы даты и времени
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "02.01.2006"
	DisplayFormat     = "02.01.2006 15:04"
)

// Ключи private extended properties события в календаре
const (
	PropCustomerName  = "customerName"
	PropCustomerPhone = "customerPhone"
	PropCustomerEmail = "customerEmail"
	PropServiceType   = "serviceType"
	PropVehicleInfo   = "vehicleInfo"
	PropNotes         = "notes"
)

// DefaultWorkingDays понедельник - пятница
func DefaultWorkingDays() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}
