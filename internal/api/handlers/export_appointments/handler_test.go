package export_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
	loc *time.Location
}

func (m *MockBookingService) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentListResponse), args.Error(1)
}

func (m *MockBookingService) Location() *time.Location {
	return m.loc
}

func TestHandle(t *testing.T) {
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)

	t.Run("exports appointments", func(t *testing.T) {
		svc := &MockBookingService{loc: loc}
		start := time.Date(2026, 10, 19, 9, 15, 0, 0, loc)
		svc.On("List", mock.Anything, mock.Anything).Return(&models.AppointmentListResponse{
			Appointments: []models.AppointmentResponse{{
				EventID:       "evt-1",
				CustomerName:  "Ján Novák",
				CustomerPhone: "+421900000001",
				ServiceType:   "STK",
				VehicleInfo:   "Škoda Octavia",
				Start:         start,
				End:           start.Add(time.Hour),
				Status:        domain.StatusConfirmed,
			}},
		}, nil)

		h := NewHandler(svc, "+421910223761", logger.NewNop())
		h.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/booking/appointments.ics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, contentType, rec.Header().Get("Content-Type"))

		cal, err := ical.NewDecoder(rec.Body).Decode()
		require.NoError(t, err)

		events := cal.Events()
		require.Len(t, events, 1)

		uid, err := events[0].Props.Text(ical.PropUID)
		require.NoError(t, err)
		assert.Equal(t, "evt-1", uid)

		summary, err := events[0].Props.Text(ical.PropSummary)
		require.NoError(t, err)
		assert.Equal(t, "Servis - Ján Novák (STK)", summary)

		dtStart, err := events[0].DateTimeStart(time.UTC)
		require.NoError(t, err)
		assert.True(t, dtStart.Equal(start))

		status, err := events[0].Props.Text(ical.PropStatus)
		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", status)
	})

	t.Run("empty period", func(t *testing.T) {
		svc := &MockBookingService{loc: loc}
		svc.On("List", mock.Anything, mock.Anything).Return(&models.AppointmentListResponse{}, nil)

		rec := httptest.NewRecorder()
		NewHandler(svc, "+421910223761", logger.NewNop()).
			Handle(rec, httptest.NewRequest(http.MethodGet, "/booking/appointments.ics", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("calendar unavailable", func(t *testing.T) {
		svc := &MockBookingService{loc: loc}
		svc.On("List", mock.Anything, mock.Anything).Return(nil, bookings.ErrGatewayUnavailable)

		rec := httptest.NewRecorder()
		NewHandler(svc, "+421910223761", logger.NewNop()).
			Handle(rec, httptest.NewRequest(http.MethodGet, "/booking/appointments.ics", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
