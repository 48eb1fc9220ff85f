package health

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
)

// Handler отдает состояние сервиса
// Всегда 200, состояние зависимостей в теле ответа
type Handler struct {
	calendar CalendarStatus
	sms      SMSStatus
	name     string
	version  string
	now      func() time.Time
}

func NewHandler(calendar CalendarStatus, sms SMSStatus, name, version string) *Handler {
	return &Handler{
		calendar: calendar,
		sms:      sms,
		name:     name,
		version:  version,
		now:      time.Now,
	}
}

// Health GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	calendarReady := h.calendar.Ready()
	smsConfigured := h.sms.Configured()

	handlers.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:             "OK",
		Timestamp:          h.now().UTC(),
		CalendarConfigured: calendarReady,
		SMSConfigured:      smsConfigured,
		Services: map[string]string{
			"booking": availability(calendarReady),
			"sms":     availability(smsConfigured),
		},
	})
}

// Root GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, DescriptorResponse{
		Name:      h.name,
		Version:   h.version,
		Status:    "running",
		Timestamp: h.now().UTC(),
		Endpoints: map[string]string{
			"health":       "/health",
			"sms":          "/webhook/sms",
			"humanRequest": "/webhook/human-request",
			"booking":      "/booking/appointment",
			"availability": "/booking/availability",
			"checkSlot":    "/booking/check-slot",
			"appointments": "/booking/appointments",
			"export":       "/booking/appointments.ics",
		},
	})
}
