package send_sms

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/integrations/twilio"
)

// Принимаются только словацкие номера
const phonePrefix = "+421"

const (
	msgInvalidRequestBody = "Neplatné telo požiadavky"
	msgMissingFields      = "Chýbajú povinné polia: to, message"
	msgInvalidPhone       = "Neplatné slovenské telefónne číslo, musí začínať +421"
	msgNotConfigured      = "SMS služba nie je dostupná"
	msgRejected           = "SMS bola odmietnutá operátorom"
	msgSendFailed         = "Nepodarilo sa odoslať SMS"
)

type Handler struct {
	sms    SMSSender
	logger Logger
}

func NewHandler(sms SMSSender, logger Logger) *Handler {
	return &Handler{
		sms:    sms,
		logger: logger,
	}
}

// Handle POST /webhook/sms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.sms.Configured() {
		h.logger.Warn("POST /webhook/sms - SMS is not configured")
		handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)
		return
	}

	var req SendSMSRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhook/sms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.To == "" || strings.TrimSpace(req.Message) == "" {
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}
	if !strings.HasPrefix(req.To, phonePrefix) {
		h.logger.Warn("POST /webhook/sms - Invalid phone number: %s", req.To)
		handlers.RespondBadRequest(w, msgInvalidPhone)
		return
	}

	msg, err := h.sms.SendSMS(r.Context(), req.To, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, twilio.ErrNotConfigured):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)
		case errors.Is(err, twilio.ErrRejected):
			h.logger.Warn("POST /webhook/sms - SMS rejected: to=%s, error=%v", req.To, err)
			handlers.RespondBadRequest(w, msgRejected)
		default:
			h.logger.Error("POST /webhook/sms - Failed to send SMS: to=%s, error=%v", req.To, err)
			handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)
		}
		return
	}

	h.logger.Info("POST /webhook/sms - SMS sent: to=%s, sid=%s", req.To, msg.SID)
	handlers.RespondJSON(w, http.StatusOK, SendSMSResponse{
		Success:    true,
		MessageSID: msg.SID,
		To:         req.To,
		Message:    req.Message,
	})
}
