package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

// BusyProvider возвращает занятые интервалы за окно [from, to]
// В проде за ним стоит free/busy запрос к календарю
type BusyProvider func(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error)

// NextAvailable результат поиска ближайшего свободного дня
type NextAvailable struct {
	Date  time.Time     // полночь найденного дня в зоне сервиса
	Slot  domain.Slot   // самый ранний слот
	Slots []domain.Slot // все подходящие слоты этого дня
}

// DayBounds возвращает начало и конец рабочего дня для даты в зоне сервиса
func DayBounds(date time.Time, cfg domain.BusinessHours) (time.Time, time.Time) {
	y, m, d := date.In(cfg.Location).Date()
	start := time.Date(y, m, d, cfg.StartHour, 0, 0, 0, cfg.Location)
	end := time.Date(y, m, d, cfg.EndHour, 0, 0, 0, cfg.Location)
	return start, end
}

// EnumerateSlots генерирует свободные слоты на день
// Слоты идут с фиксированным шагом (длительность + буфер) от начала рабочего дня.
// Курсор сдвигается на шаг и после отклоненного слота, поэтому начала слотов всегда
// равны startOfDay + k*шаг
func EnumerateSlots(date time.Time, busy []domain.BusyInterval, cfg domain.BusinessHours) []domain.Slot {
	result := make([]domain.Slot, 0)

	// Выходной - слотов нет
	if !cfg.IsWorkingDay(date.In(cfg.Location).Weekday()) {
		return result
	}

	startOfDay, endOfDay := DayBounds(date, cfg)
	duration := cfg.AppointmentDuration()
	stride := cfg.Stride()

	for cursor := startOfDay; !cursor.Add(duration).After(endOfDay); cursor = cursor.Add(stride) {
		slot := domain.Slot{Start: cursor, End: cursor.Add(duration)}
		if !conflicts(slot, busy) {
			result = append(result, slot)
		}
	}

	return result
}

// conflicts true, если слот пересекается хотя бы с одним занятым интервалом
func conflicts(slot domain.Slot, busy []domain.BusyInterval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// FindNextAvailable ищет первый день с хотя бы одним слотом, начинающимся строго после now
// Просматриваются дни today .. today+searchDays-1, выходные пропускаются без обращения к провайдеру.
// Если ничего не найдено, возвращается nil без ошибки
func FindNextAvailable(
	ctx context.Context,
	now time.Time,
	searchDays int,
	cfg domain.BusinessHours,
	provider BusyProvider,
) (*NextAvailable, error) {
	if searchDays <= 0 {
		searchDays = domain.DefaultSearchDays
	}

	local := now.In(cfg.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, cfg.Location)

	for i := 0; i < searchDays; i++ {
		// AddDate, а не Add(24h): сутки при переходе на летнее время короче или длиннее
		date := today.AddDate(0, 0, i)
		if !cfg.IsWorkingDay(date.Weekday()) {
			continue
		}

		from, to := DayBounds(date, cfg)
		if !to.After(now) {
			continue
		}

		busy, err := provider(ctx, from, to)
		if err != nil {
			return nil, err
		}

		slots := FilterAfter(EnumerateSlots(date, busy, cfg), now)
		if len(slots) > 0 {
			return &NextAvailable{
				Date:  date,
				Slot:  slots[0],
				Slots: slots,
			}, nil
		}
	}

	return nil, nil
}

// FilterAfter оставляет только слоты, начинающиеся строго после момента t
func FilterAfter(slots []domain.Slot, t time.Time) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start.After(t) {
			result = append(result, s)
		}
	}
	return result
}
