package export_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error)
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
