package get_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Get(ctx context.Context, eventID string) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func serve(svc BookingService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/booking/appointment/{id}", NewHandler(svc, "+421910223761", logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &MockBookingService{}
		svc.On("Get", mock.Anything, "evt-1").Return(&models.AppointmentResponse{
			EventID:      "evt-1",
			CustomerName: "Ján Novák",
		}, nil)

		rec := serve(svc, "/booking/appointment/evt-1")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.AppointmentResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "evt-1", resp.EventID)
		assert.Equal(t, "Ján Novák", resp.CustomerName)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockBookingService{}
		svc.On("Get", mock.Anything, "missing").Return(nil, fmt.Errorf("%w: Get", bookings.ErrNotFound))

		rec := serve(svc, "/booking/appointment/missing")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("calendar unavailable", func(t *testing.T) {
		svc := &MockBookingService{}
		svc.On("Get", mock.Anything, "evt-1").Return(nil, bookings.ErrGatewayUnavailable)

		rec := serve(svc, "/booking/appointment/evt-1")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "+421910223761")
	})
}
