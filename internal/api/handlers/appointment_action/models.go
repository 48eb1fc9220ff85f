package appointment_action

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/types"
)

// Действия запроса
const (
	ActionCheckAvailability = "check_availability"
	ActionFindNext          = "find_next_available"
	ActionFindAlternative   = "find_alternative"
	ActionBook              = "book"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// ActionRequest HTTP request model
// Набор заполняемых полей зависит от action
type ActionRequest struct {
	Action string `json:"action"`

	// check_availability, find_alternative
	Date *string `json:"date,omitempty"` // "2026-10-19"
	Time *string `json:"time,omitempty"` // "10:30"

	// find_next_available, find_alternative
	SearchDays int `json:"searchDays,omitempty"`

	// find_alternative
	TimePreference string `json:"timePreference,omitempty"` // morning | afternoon | any

	// book
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	ServiceType   string  `json:"serviceType,omitempty"`
	VehicleInfo   string  `json:"vehicleInfo,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	PreferredDate *string `json:"preferredDate,omitempty"`
	PreferredTime *string `json:"preferredTime,omitempty"`
}

// ActionResponse HTTP response model
type ActionResponse struct {
	Success bool        `json:"success"`
	Action  string      `json:"action"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ToBookRequest конвертирует HTTP запрос в модель сервиса
func (r *ActionRequest) ToBookRequest(loc *time.Location) (*models.BookRequest, error) {
	date, err := parseDate(r.PreferredDate, loc)
	if err != nil {
		return nil, err
	}
	tm, err := parseTime(r.PreferredTime)
	if err != nil {
		return nil, err
	}

	return &models.BookRequest{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		ServiceType:   r.ServiceType,
		VehicleInfo:   r.VehicleInfo,
		Notes:         r.Notes,
		PreferredDate: date,
		PreferredTime: tm,
	}, nil
}

// ToAlternativeRequest конвертирует HTTP запрос в модель сервиса
func (r *ActionRequest) ToAlternativeRequest(loc *time.Location) (*models.AlternativeRequest, error) {
	date, err := parseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}
	tm, err := parseTime(r.Time)
	if err != nil {
		return nil, err
	}

	return &models.AlternativeRequest{
		Preference: domain.TimePreference(strings.ToLower(r.TimePreference)),
		Date:       date,
		Time:       tm,
		SearchDays: r.SearchDays,
	}, nil
}

func parseDate(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	date, err := time.ParseInLocation(domain.DateFormat, *s, loc)
	if err != nil {
		return nil, errInvalidDate
	}
	return &date, nil
}

func parseTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	tm, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, errInvalidTime
	}
	return &tm, nil
}

// slotTimes список времен слотов через запятую для сообщения
func slotTimes(slots []models.SlotResponse) string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.Time
	}
	return strings.Join(times, ", ")
}

// displayDate "2026-10-19" -> "19.10.2026"
func displayDate(date string) string {
	t, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format(domain.DisplayDateFormat)
}
