package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatus bool

func (s stubStatus) Ready() bool      { return bool(s) }
func (s stubStatus) Configured() bool { return bool(s) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		calendar bool
		sms      bool
		booking  string
	}{
		{"all available", true, true, StatusAvailable},
		{"calendar down", false, true, StatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(stubStatus(tt.calendar), stubStatus(tt.sms), "autoservis-booking", "test")

			rec := httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "OK", resp.Status)
			assert.Equal(t, tt.calendar, resp.CalendarConfigured)
			assert.Equal(t, tt.booking, resp.Services["booking"])
			assert.Equal(t, StatusAvailable, resp.Services["sms"])
		})
	}
}

func TestRoot(t *testing.T) {
	h := NewHandler(stubStatus(true), stubStatus(false), "autoservis-booking", "1.0.0")

	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DescriptorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "autoservis-booking", resp.Name)
	assert.Equal(t, "/booking/appointment", resp.Endpoints["booking"])
}
