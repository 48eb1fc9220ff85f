package update_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/types"
)

var (
	errInvalidDateTime = errors.New("invalid date or time")
	errIncompleteTime  = errors.New("date and time must be given together")
)

// UpdateRequest HTTP request model
// Новое время задается либо парой date/time в зоне сервиса, либо start/end в RFC3339
// end не обязателен; если передан, должен равняться start плюс длительность записи
type UpdateRequest struct {
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	ServiceType   *string `json:"serviceType,omitempty"`
	VehicleInfo   *string `json:"vehicleInfo,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	Date *string `json:"date,omitempty"` // "2026-10-19"
	Time *string `json:"time,omitempty"` // "10:30"

	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// ToPatch конвертирует HTTP запрос в патч записи
func (r *UpdateRequest) ToPatch(loc *time.Location) (domain.AppointmentPatch, error) {
	patch := domain.AppointmentPatch{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		ServiceType:   r.ServiceType,
		VehicleInfo:   r.VehicleInfo,
		Notes:         r.Notes,
		Start:         r.Start,
		End:           r.End,
	}

	hasDate := r.Date != nil && *r.Date != ""
	hasTime := r.Time != nil && *r.Time != ""
	if hasDate != hasTime {
		return patch, errIncompleteTime
	}
	if !hasDate {
		return patch, nil
	}

	date, err := time.ParseInLocation(domain.DateFormat, *r.Date, loc)
	if err != nil {
		return patch, errInvalidDateTime
	}
	tm, err := types.NewTimeStringFromString(*r.Time)
	if err != nil {
		return patch, errInvalidDateTime
	}

	start := tm.On(date, loc)
	patch.Start = &start
	return patch, nil
}
