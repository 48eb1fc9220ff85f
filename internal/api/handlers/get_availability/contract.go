package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
)

type BookingService interface {
	CheckAvailability(ctx context.Context, date time.Time) (*models.AvailabilityResponse, error)
	FindNext(ctx context.Context, searchDays int) (*models.NextAvailableResponse, error)
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
