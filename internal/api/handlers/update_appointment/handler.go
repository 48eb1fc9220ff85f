package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "Neplatné telo požiadavky"
	msgMissingID          = "Chýba ID rezervácie"
	msgInvalidDateTime    = "Neplatný dátum alebo čas, očakáva sa RRRR-MM-DD a HH:MM"
	msgIncompleteTime     = "Dátum a čas je potrebné zadať spolu"
	msgInvalidInput       = "Neplatné údaje pre zmenu rezervácie"
	msgNotFound           = "Rezervácia sa nenašla"
	msgSlotTaken          = "Zvolený termín je už obsadený, vyberte si prosím iný čas"
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

// Handle PUT /booking/appointment/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]
	if eventID == "" {
		h.logger.Warn("PUT /booking/appointment/{id} - Missing id")
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	var req UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking/appointment/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	patch, err := req.ToPatch(h.service.Location())
	if err != nil {
		h.logger.Warn("PUT /booking/appointment/{id} - Failed to parse request: id=%s, error=%v", eventID, err)
		if errors.Is(err, errIncompleteTime) {
			handlers.RespondBadRequest(w, msgIncompleteTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDateTime)
		}
		return
	}

	result, err := h.service.Update(r.Context(), eventID, patch)
	if err != nil {
		if message, ok := handlers.PolicyMessage(err); ok {
			h.logger.Warn("PUT /booking/appointment/{id} - Policy violation: id=%s, error=%v", eventID, err)
			handlers.RespondBadRequest(w, message)
			return
		}

		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /booking/appointment/{id} - Invalid input: id=%s, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, bookings.ErrNotFound):
			h.logger.Warn("PUT /booking/appointment/{id} - Appointment not found: id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrSlotConflict):
			h.logger.Warn("PUT /booking/appointment/{id} - Slot taken: id=%s", eventID)
			handlers.RespondConflict(w, msgSlotTaken)
		case errors.Is(err, bookings.ErrGatewayUnavailable):
			h.logger.Error("PUT /booking/appointment/{id} - Calendar unavailable: id=%s, error=%v", eventID, err)
			handlers.RespondServiceUnavailable(w, h.fallbackPhone)
		default:
			h.logger.Error("PUT /booking/appointment/{id} - Failed to update appointment: id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking/appointment/{id} - Appointment updated: id=%s, start=%s", eventID, result.Display)
	handlers.RespondJSON(w, http.StatusOK, result)
}
