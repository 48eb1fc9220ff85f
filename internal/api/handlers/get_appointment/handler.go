package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
)

const (
	msgMissingID = "Chýba ID rezervácie"
	msgNotFound  = "Rezervácia sa nenašla"
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

// Handle GET /booking/appointment/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]
	if eventID == "" {
		h.logger.Warn("GET /booking/appointment/{id} - Missing id")
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.service.Get(r.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			h.logger.Warn("GET /booking/appointment/{id} - Appointment not found: id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /booking/appointment/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingID)
		case errors.Is(err, bookings.ErrGatewayUnavailable):
			h.logger.Error("GET /booking/appointment/{id} - Calendar unavailable: id=%s, error=%v", eventID, err)
			handlers.RespondServiceUnavailable(w, h.fallbackPhone)
		default:
			h.logger.Error("GET /booking/appointment/{id} - Failed to get appointment: id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking/appointment/{id} - Appointment retrieved: id=%s", eventID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
