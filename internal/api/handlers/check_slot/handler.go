package check_slot

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "Neplatné telo požiadavky"
	msgInvalidDateTime    = "Neplatný dátum alebo čas, očakáva sa RRRR-MM-DD a HH:MM"
	msgAvailable          = "Termín %s je voľný"
	msgTaken              = "Termín %s je už obsadený"
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

// Handle POST /booking/check-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/check-slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := req.ToStart(h.service.Location())
	if err != nil {
		h.logger.Warn("POST /booking/check-slot - Invalid date or time: date=%q, time=%q", req.Date, req.Time)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.CheckSlot(r.Context(), start)
	if err != nil {
		if message, ok := handlers.PolicyMessage(err); ok {
			h.logger.Warn("POST /booking/check-slot - Policy violation: %v", err)
			handlers.RespondBadRequest(w, message)
			return
		}

		switch {
		case errors.Is(err, bookings.ErrGatewayUnavailable):
			h.logger.Error("POST /booking/check-slot - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, h.fallbackPhone)
		default:
			h.logger.Error("POST /booking/check-slot - Failed to check slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	message := fmt.Sprintf(msgTaken, result.Slot.Display)
	if result.Available {
		message = fmt.Sprintf(msgAvailable, result.Slot.Display)
	}

	h.logger.Info("POST /booking/check-slot - %s available=%t", result.Slot.Display, result.Available)
	handlers.RespondJSON(w, http.StatusOK, CheckSlotResponse{
		Success:   true,
		Available: result.Available,
		Message:   message,
		Slot:      result.Slot,
	})
}
