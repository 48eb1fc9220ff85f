package domain

import "time"

// BusyInterval занятый период календаря, как его вернул free/busy запрос
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// IsValid true, если интервал корректен (начало строго раньше конца)
func (b BusyInterval) IsValid() bool {
	return b.Start.Before(b.End)
}

// Slot свободный временной слот для записи фиксированной длительности
type Slot struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение слота с занятым интервалом
// Граничные случаи (конец одного совпадает с началом другого) пересечением не считаются
func (s Slot) Overlaps(b BusyInterval) bool {
	return s.Start.Before(b.End) && s.End.After(b.Start)
}

// Duration длительность слота
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
