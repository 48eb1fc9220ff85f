package export_appointments

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/emersion/go-ical"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
)

const (
	msgInvalidQuery = "Neplatný formát dátumu, očakáva sa RRRR-MM-DD"
	msgInvalidRange = "Začiatok obdobia nesmie byť po jeho konci"

	contentType = "text/calendar; charset=utf-8"
	fileName    = "autoservis-rezervacie.ics"
)

type Handler struct {
	service       BookingService
	fallbackPhone string
	logger        Logger
	now           func() time.Time
}

func NewHandler(service BookingService, fallbackPhone string, logger Logger) *Handler {
	return &Handler{
		service:       service,
		fallbackPhone: fallbackPhone,
		logger:        logger,
		now:           time.Now,
	}
}

// Handle GET /booking/appointments.ics
// Те же фильтры, что и у списка записей, ответ в формате iCalendar
// Пустой период - 204 без тела
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.ParseListQuery(r.URL.Query(), h.service.Location())
	if err != nil {
		h.logger.Warn("GET /booking/appointments.ics - Invalid query: %s", r.URL.RawQuery)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, bookings.ErrGatewayUnavailable):
			h.logger.Error("GET /booking/appointments.ics - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, h.fallbackPhone)
		default:
			h.logger.Error("GET /booking/appointments.ics - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// VCALENDAR без компонентов кодировщик не принимает
	if len(result.Appointments) == 0 {
		h.logger.Info("GET /booking/appointments.ics - Nothing to export")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Календарь кодируется целиком до записи заголовков
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(toCalendar(result.Appointments, h.now())); err != nil {
		h.logger.Error("GET /booking/appointments.ics - Failed to encode calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /booking/appointments.ics - Exported %d appointments", len(result.Appointments))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
