package check_slot

import (
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/types"
)

// CheckSlotRequest HTTP request model
type CheckSlotRequest struct {
	Date string `json:"date"` // "2026-10-19"
	Time string `json:"time"` // "10:30"
}

// ToStart момент начала записи в зоне сервиса
func (r *CheckSlotRequest) ToStart(loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	tm, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return time.Time{}, err
	}
	return tm.On(date, loc), nil
}

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Success   bool                `json:"success"`
	Available bool                `json:"available"`
	Message   string              `json:"message"`
	Slot      models.SlotResponse `json:"slot"`
}
