package get_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func (m *MockBookingService) CheckAvailability(ctx context.Context, date time.Time) (*models.AvailabilityResponse, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityResponse), args.Error(1)
}

func (m *MockBookingService) FindNext(ctx context.Context, searchDays int) (*models.NextAvailableResponse, error) {
	args := m.Called(ctx, searchDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NextAvailableResponse), args.Error(1)
}

func (m *MockBookingService) Location() *time.Location {
	return m.loc
}

func newService(t *testing.T) *MockBookingService {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)
	return &MockBookingService{loc: loc}
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, "+421910223761", logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("slots for a date", func(t *testing.T) {
		svc := newService(t)
		svc.On("CheckAvailability", mock.Anything, mock.MatchedBy(func(d time.Time) bool {
			return d.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, svc.loc))
		})).
			Return(&models.AvailabilityResponse{Date: "2026-10-19", Slots: []models.SlotResponse{}}, nil)

		rec := serve(svc, "/booking/availability?date=2026-10-19")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"date":"2026-10-19","slots":[]}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("next available with days", func(t *testing.T) {
		svc := newService(t)
		svc.On("FindNext", mock.Anything, 5).Return(&models.NextAvailableResponse{Date: "2026-10-20"}, nil)

		rec := serve(svc, "/booking/availability?days=5")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("next available default window", func(t *testing.T) {
		svc := newService(t)
		svc.On("FindNext", mock.Anything, 0).Return(nil, bookings.ErrNoAvailableSlot)

		rec := serve(svc, "/booking/availability")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(newService(t), "/booking/availability?date=tomorrow").Code)
		assert.Equal(t, http.StatusBadRequest, serve(newService(t), "/booking/availability?days=-1").Code)
	})

	t.Run("calendar unavailable", func(t *testing.T) {
		svc := newService(t)
		svc.On("CheckAvailability", mock.Anything, mock.Anything).Return(nil, bookings.ErrGatewayUnavailable)

		rec := serve(svc, "/booking/availability?date=2026-10-19")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
