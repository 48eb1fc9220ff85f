package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
)

const (
	msgInvalidQuery = "Neplatný formát dátumu, očakáva sa RRRR-MM-DD"
	msgInvalidRange = "Začiatok obdobia nesmie byť po jeho konci"
)

type Handler struct {
	service       BookingService
	fallbackPhone string
	logger        Logger
}

func NewHandler(service BookingService, fallbackPhone string, logger Logger) *Handler {
	return &Handler{
		service:       service,
		fallbackPhone: fallbackPhone,
		logger:        logger,
	}
}

// Handle GET /booking/appointments?startDate=&endDate=&customerPhone=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.ParseListQuery(r.URL.Query(), h.service.Location())
	if err != nil {
		h.logger.Warn("GET /booking/appointments - Invalid query: %s", r.URL.RawQuery)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /booking/appointments - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, bookings.ErrGatewayUnavailable):
			h.logger.Error("GET /booking/appointments - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, h.fallbackPhone)
		default:
			h.logger.Error("GET /booking/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking/appointments - Retrieved %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
