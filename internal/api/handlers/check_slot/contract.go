package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
)

type BookingService interface {
	CheckSlot(ctx context.Context, start time.Time) (*models.SlotCheckResponse, error)
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
