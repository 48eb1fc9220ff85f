package models

import (
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/types"
)

// Request модели

// BookRequest запрос на создание записи
// Если не указаны и дата, и время, берется ближайший свободный слот
type BookRequest struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	ServiceType   string
	VehicleInfo   string
	Notes         string
	PreferredDate *time.Time        // дата без времени
	PreferredTime *types.TimeString // "HH:MM" в зоне сервиса
}

// AlternativeRequest запрос на поиск альтернативного времени
type AlternativeRequest struct {
	Preference domain.TimePreference
	Date       *time.Time
	Time       *types.TimeString
	SearchDays int
}

// ListRequest фильтр списка записей
type ListRequest struct {
	StartDate     *time.Time
	EndDate       *time.Time
	CustomerPhone *string
}

// Response модели

// SlotResponse свободный слот
type SlotResponse struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Date    string    `json:"date"`    // "2026-10-19"
	Time    string    `json:"time"`    // "09:15"
	Display string    `json:"display"` // "19.10.2026 09:15"
}

// AvailabilityResponse слоты на день
type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// NextAvailableResponse ближайший свободный день
type NextAvailableResponse struct {
	Date  string         `json:"date"`
	Slot  SlotResponse   `json:"slot"`
	Slots []SlotResponse `json:"slots"`
}

// AlternativesResponse найденные альтернативы
type AlternativesResponse struct {
	Alternatives []SlotResponse `json:"alternatives"`
}

// SlotCheckResponse результат проверки конкретного времени
type SlotCheckResponse struct {
	Available bool         `json:"available"`
	Slot      SlotResponse `json:"slot"`
}

// AppointmentResponse данные записи
type AppointmentResponse struct {
	EventID       string    `json:"eventId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	CustomerEmail *string   `json:"customerEmail,omitempty"`
	ServiceType   string    `json:"serviceType,omitempty"`
	VehicleInfo   string    `json:"vehicleInfo,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Display       string    `json:"display"`
	Status        string    `json:"status"`
	HTMLLink      string    `json:"htmlLink,omitempty"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainSlot конвертирует слот в DTO
func FromDomainSlot(s domain.Slot) SlotResponse {
	return SlotResponse{
		Start:   s.Start,
		End:     s.End,
		Date:    s.Start.Format(domain.DateFormat),
		Time:    s.Start.Format(domain.TimeFormat),
		Display: s.Start.Format(domain.DisplayFormat),
	}
}

// FromDomainSlots конвертирует список слотов в DTO
func FromDomainSlots(slots []domain.Slot) []SlotResponse {
	result := make([]SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = FromDomainSlot(s)
	}
	return result
}

// FromDomainAppointment конвертирует запись в DTO, время выводится в зоне loc
func FromDomainAppointment(a domain.Appointment, loc *time.Location) *AppointmentResponse {
	start := a.Start.In(loc)
	return &AppointmentResponse{
		EventID:       a.EventID,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		CustomerEmail: a.CustomerEmail,
		ServiceType:   a.ServiceType,
		VehicleInfo:   a.VehicleInfo,
		Notes:         a.Notes,
		Start:         start,
		End:           a.End.In(loc),
		Date:          start.Format(domain.DateFormat),
		Time:          start.Format(domain.TimeFormat),
		Display:       start.Format(domain.DisplayFormat),
		Status:        a.Status,
		HTMLLink:      a.HTMLLink,
	}
}

// FromDomainAppointmentList конвертирует список записей в DTO
func FromDomainAppointmentList(list []domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(list)),
	}
	for i, a := range list {
		resp.Appointments[i] = *FromDomainAppointment(a, loc)
	}
	return resp
}
