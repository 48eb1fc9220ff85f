package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

func testConfig(t *testing.T) domain.BusinessHours {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)
	return domain.DefaultBusinessHours(loc)
}

func at(cfg domain.BusinessHours, y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, cfg.Location)
}

func startTimes(slots []domain.Slot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Start.Format(domain.TimeFormat)
	}
	return result
}

// 2026-10-19 - понедельник
func TestEnumerateSlots(t *testing.T) {
	cfg := testConfig(t)
	monday := at(cfg, 2026, 10, 19, 0, 0)

	t.Run("empty day uses fixed stride", func(t *testing.T) {
		slots := EnumerateSlots(monday, nil, cfg)

		expected := (cfg.EndHour - cfg.StartHour) * 60 / (cfg.AppointmentDurationMinutes + cfg.BufferMinutes)
		require.Len(t, slots, expected)
		assert.Equal(t, []string{"08:00", "09:15", "10:30", "11:45", "13:00", "14:15", "15:30"}, startTimes(slots))

		for i, s := range slots {
			assert.Equal(t, cfg.AppointmentDuration(), s.Duration())
			if i > 0 {
				assert.Equal(t, cfg.Stride(), s.Start.Sub(slots[i-1].Start))
			}
		}
	})

	t.Run("weekend returns nothing", func(t *testing.T) {
		saturday := at(cfg, 2026, 10, 24, 0, 0)
		sunday := at(cfg, 2026, 10, 25, 0, 0)

		assert.Empty(t, EnumerateSlots(saturday, nil, cfg))
		assert.Empty(t, EnumerateSlots(sunday, []domain.BusyInterval{
			{Start: at(cfg, 2026, 10, 25, 9, 0), End: at(cfg, 2026, 10, 25, 10, 0)},
		}, cfg))
	})

	t.Run("busy interval removes only overlapping slots", func(t *testing.T) {
		busy := []domain.BusyInterval{
			{Start: at(cfg, 2026, 10, 19, 9, 0), End: at(cfg, 2026, 10, 19, 10, 0)},
		}

		slots := EnumerateSlots(monday, busy, cfg)

		assert.Equal(t, []string{"08:00", "10:30", "11:45", "13:00", "14:15", "15:30"}, startTimes(slots))
	})

	t.Run("rejected slot does not repack the day", func(t *testing.T) {
		// 08:00-08:30 занято: слот 08:00 отброшен, следующий все равно 09:15, а не 08:30
		busy := []domain.BusyInterval{
			{Start: at(cfg, 2026, 10, 19, 8, 0), End: at(cfg, 2026, 10, 19, 8, 30)},
		}

		slots := EnumerateSlots(monday, busy, cfg)

		require.NotEmpty(t, slots)
		assert.Equal(t, "09:15", slots[0].Start.Format(domain.TimeFormat))
	})

	t.Run("touching intervals are not conflicts", func(t *testing.T) {
		busy := []domain.BusyInterval{
			{Start: at(cfg, 2026, 10, 19, 7, 0), End: at(cfg, 2026, 10, 19, 8, 0)},
			{Start: at(cfg, 2026, 10, 19, 9, 0), End: at(cfg, 2026, 10, 19, 9, 15)},
		}

		slots := EnumerateSlots(monday, busy, cfg)

		assert.Len(t, slots, 7)
	})

	t.Run("no returned slot overlaps busy time", func(t *testing.T) {
		busy := []domain.BusyInterval{
			{Start: at(cfg, 2026, 10, 19, 8, 30), End: at(cfg, 2026, 10, 19, 8, 45)},
			{Start: at(cfg, 2026, 10, 19, 11, 0), End: at(cfg, 2026, 10, 19, 13, 30)},
			{Start: at(cfg, 2026, 10, 19, 16, 30), End: at(cfg, 2026, 10, 19, 16, 30)},
		}

		slots := EnumerateSlots(monday, busy, cfg)

		for _, s := range slots {
			for _, b := range busy {
				assert.False(t, s.Start.Before(b.End) && s.End.After(b.Start),
					"slot %s overlaps busy %s-%s", s.Start, b.Start, b.End)
			}
		}
		assert.Equal(t, []string{"09:15", "14:15", "15:30"}, startTimes(slots))
	})

	t.Run("same input gives same output", func(t *testing.T) {
		busy := []domain.BusyInterval{
			{Start: at(cfg, 2026, 10, 19, 10, 0), End: at(cfg, 2026, 10, 19, 11, 0)},
		}

		assert.Equal(t, EnumerateSlots(monday, busy, cfg), EnumerateSlots(monday, busy, cfg))
	})

	t.Run("last slot must end by closing", func(t *testing.T) {
		custom := cfg
		custom.EndHour = 10
		custom.BufferMinutes = 0

		slots := EnumerateSlots(monday, nil, custom)

		assert.Equal(t, []string{"08:00", "09:00"}, startTimes(slots))
	})
}

func TestFindNextAvailable(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	noBusy := func(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error) {
		return nil, nil
	}

	t.Run("today keeps only future slots", func(t *testing.T) {
		now := at(cfg, 2026, 10, 19, 9, 15)

		next, err := FindNextAvailable(ctx, now, 14, cfg, noBusy)

		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, "10:30", next.Slot.Start.Format(domain.TimeFormat))
		for _, s := range next.Slots {
			assert.True(t, s.Start.After(now))
		}
	})

	t.Run("weekend is skipped without provider calls", func(t *testing.T) {
		// пятница после закрытия
		now := at(cfg, 2026, 10, 23, 18, 0)
		var calls []time.Time
		provider := func(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error) {
			calls = append(calls, from)
			return nil, nil
		}

		next, err := FindNextAvailable(ctx, now, 14, cfg, provider)

		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, time.Monday, next.Date.Weekday())
		assert.Equal(t, "08:00", next.Slot.Start.Format(domain.TimeFormat))
		require.Len(t, calls, 1)
		assert.Equal(t, time.Monday, calls[0].Weekday())
	})

	t.Run("fully booked window returns nil", func(t *testing.T) {
		now := at(cfg, 2026, 10, 19, 7, 0)
		full := func(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error) {
			return []domain.BusyInterval{{Start: from, End: to}}, nil
		}

		next, err := FindNextAvailable(ctx, now, 5, cfg, full)

		require.NoError(t, err)
		assert.Nil(t, next)
	})

	t.Run("provider error is returned", func(t *testing.T) {
		now := at(cfg, 2026, 10, 19, 7, 0)
		boom := errors.New("boom")
		failing := func(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error) {
			return nil, boom
		}

		next, err := FindNextAvailable(ctx, now, 14, cfg, failing)

		assert.ErrorIs(t, err, boom)
		assert.Nil(t, next)
	})

	t.Run("slot starting exactly now is excluded", func(t *testing.T) {
		now := at(cfg, 2026, 10, 19, 8, 0)

		next, err := FindNextAvailable(ctx, now, 1, cfg, noBusy)

		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, "09:15", next.Slot.Start.Format(domain.TimeFormat))
	})
}
