package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "09:15"},
		{name: "midnight", input: "00:00"},
		{name: "single digit hour", input: "9:15", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("08:00").AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:15"), got)

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("07:59").IsBefore("08:00"))
	assert.True(t, TimeString("17:01").IsAfter("17:00"))
	assert.False(t, TimeString("08:00").IsBefore("08:00"))
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Bratislava")
	require.NoError(t, err)

	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	got := TimeString("10:30").On(date, loc)

	assert.Equal(t, time.Date(2026, 10, 19, 10, 30, 0, 0, loc), got)
}
