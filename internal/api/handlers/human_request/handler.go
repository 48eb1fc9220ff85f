package human_request

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/integrations/twilio"
)

const (
	msgInvalidRequestBody = "Neplatné telo požiadavky"
	msgMissingFields      = "Chýbajú povinné polia: customer_name, customer_phone"
	msgNotConfigured      = "SMS služba nie je dostupná"
	msgSendFailed         = "Nepodarilo sa odoslať požiadavku o kontakt"
	msgSent               = "Požiadavka o ľudský kontakt bola úspešne odoslaná"
)

type Handler struct {
	notifier Notifier
	logger   Logger
}

func NewHandler(notifier Notifier, logger Logger) *Handler {
	return &Handler{
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /webhook/human-request
// Клиент просит живого оператора, автосервису уходит SMS
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.notifier.Configured() {
		h.logger.Warn("POST /webhook/human-request - SMS is not configured")
		handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)
		return
	}

	var req HumanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhook/human-request - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerPhone) == "" {
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	msg, err := h.notifier.Notify(r.Context(), req.SMSBody())
	if err != nil {
		if errors.Is(err, twilio.ErrNotConfigured) {
			h.logger.Warn("POST /webhook/human-request - Notify number is not configured: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)
			return
		}
		h.logger.Error("POST /webhook/human-request - Failed to send SMS: customer=%s, error=%v", req.CustomerPhone, err)
		handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)
		return
	}

	h.logger.Info("POST /webhook/human-request - Contact request sent: customer=%s, sid=%s", req.CustomerPhone, msg.SID)
	handlers.RespondJSON(w, http.StatusOK, HumanResponse{
		Success:       true,
		Message:       msgSent,
		MessageSID:    msg.SID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
}
