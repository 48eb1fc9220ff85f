package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
)

type BookingService interface {
	Get(ctx context.Context, eventID string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
