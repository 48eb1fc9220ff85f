package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

func TestValidate(t *testing.T) {
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)
	cfg := domain.DefaultBusinessHours(loc)

	// понедельник, раньше всех проверяемых моментов
	now := time.Date(2026, 10, 19, 6, 0, 0, 0, loc)

	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{"saturday morning", time.Date(2026, 10, 24, 10, 0, 0, 0, loc), ErrNonWorkingDay},
		{"sunday before opening", time.Date(2026, 10, 25, 6, 0, 0, 0, loc), ErrNonWorkingDay},
		{"one minute before opening", time.Date(2026, 10, 19, 7, 59, 0, 0, loc), ErrOutsideBusinessHours},
		{"exactly at opening", time.Date(2026, 10, 19, 8, 0, 0, 0, loc), nil},
		{"midday", time.Date(2026, 10, 19, 13, 0, 0, 0, loc), nil},
		{"exactly at closing", time.Date(2026, 10, 19, 17, 0, 0, 0, loc), nil},
		{"one minute after closing", time.Date(2026, 10, 19, 17, 1, 0, 0, loc), ErrOutsideBusinessHours},
		{"evening", time.Date(2026, 10, 19, 19, 0, 0, 0, loc), ErrOutsideBusinessHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.start, now, cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsViolation(err))
		})
	}

	t.Run("past start", func(t *testing.T) {
		later := time.Date(2026, 10, 19, 12, 0, 0, 0, loc)
		err := Validate(time.Date(2026, 10, 19, 9, 15, 0, 0, loc), later, cfg)
		assert.ErrorIs(t, err, ErrInThePast)
	})

	t.Run("weekday check wins over past check", func(t *testing.T) {
		later := time.Date(2026, 10, 30, 12, 0, 0, 0, loc)
		err := Validate(time.Date(2026, 10, 24, 7, 0, 0, 0, loc), later, cfg)
		assert.ErrorIs(t, err, ErrNonWorkingDay)
	})

	t.Run("instant in another zone is judged in business time", func(t *testing.T) {
		// 06:30 UTC = 08:30 в Братиславе (летнее время еще действует до 25.10)
		err := Validate(time.Date(2026, 10, 19, 6, 30, 0, 0, time.UTC), now, cfg)
		assert.NoError(t, err)
	})
}

func TestIsViolation(t *testing.T) {
	assert.False(t, IsViolation(errors.New("other")))
	assert.False(t, IsViolation(nil))
}
