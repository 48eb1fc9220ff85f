package appointment_action

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "Neplatné telo požiadavky"
	msgMissingAction      = "Chýba parameter action"
	msgUnknownAction      = "Neznáma akcia: %s"
	msgInvalidDate        = "Neplatný formát dátumu, očakáva sa RRRR-MM-DD"
	msgInvalidTime        = "Neplatný formát času, očakáva sa HH:MM"
	msgInvalidInput       = "Chýbajú povinné údaje (meno a telefón zákazníka)"
	msgSlotTaken          = "Zvolený termín je už obsadený, vyberte si prosím iný čas"
	msgNoSlot             = "V najbližších dňoch nie je voľný termín"

	msgDayAvailable  = "Dňa %s sú voľné termíny: %s"
	msgDayFull       = "Dňa %s nie sú voľné žiadne termíny"
	msgNextAvailable = "Najbližší voľný termín je %s"
	msgAlternatives  = "Môžeme ponúknuť tieto termíny: %s"
	msgBooked        = "Termín %s je rezervovaný. Ďakujeme, %s!"
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

// Handle POST /booking/appointment
// Единая точка для голосового ассистента, операция выбирается полем action
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/appointment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.Action {
	case ActionCheckAvailability:
		h.checkAvailability(w, r, &req)
	case ActionFindNext:
		h.findNext(w, r, &req)
	case ActionFindAlternative:
		h.findAlternative(w, r, &req)
	case ActionBook:
		h.book(w, r, &req)
	case "":
		h.logger.Warn("POST /booking/appointment - Missing action")
		handlers.RespondBadRequest(w, msgMissingAction)
	default:
		h.logger.Warn("POST /booking/appointment - Unknown action: %s", req.Action)
		handlers.RespondBadRequest(w, fmt.Sprintf(msgUnknownAction, req.Action))
	}
}

func (h *Handler) checkAvailability(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	date, err := parseDate(req.Date, h.service.Location())
	if err != nil || date == nil {
		h.logger.Warn("POST /booking/appointment - check_availability: invalid date")
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), *date)
	if err != nil {
		h.respondServiceError(w, req.Action, err)
		return
	}

	message := fmt.Sprintf(msgDayFull, displayDate(result.Date))
	if len(result.Slots) > 0 {
		message = fmt.Sprintf(msgDayAvailable, displayDate(result.Date), slotTimes(result.Slots))
	}

	h.logger.Info("POST /booking/appointment - check_availability: date=%s, slots=%d", result.Date, len(result.Slots))
	h.respond(w, http.StatusOK, req.Action, message, result)
}

func (h *Handler) findNext(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	result, err := h.service.FindNext(r.Context(), req.SearchDays)
	if err != nil {
		h.respondServiceError(w, req.Action, err)
		return
	}

	h.logger.Info("POST /booking/appointment - find_next_available: %s", result.Slot.Display)
	h.respond(w, http.StatusOK, req.Action, fmt.Sprintf(msgNextAvailable, result.Slot.Display), result)
}

func (h *Handler) findAlternative(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	altReq, err := req.ToAlternativeRequest(h.service.Location())
	if err != nil {
		h.respondParseError(w, req.Action, err)
		return
	}

	result, err := h.service.FindAlternative(r.Context(), altReq)
	if err != nil {
		h.respondServiceError(w, req.Action, err)
		return
	}

	displays := make([]string, len(result.Alternatives))
	for i, s := range result.Alternatives {
		displays[i] = s.Display
	}

	h.logger.Info("POST /booking/appointment - find_alternative: found=%d", len(result.Alternatives))
	h.respond(w, http.StatusOK, req.Action, fmt.Sprintf(msgAlternatives, strings.Join(displays, ", ")), result)
}

func (h *Handler) book(w http.ResponseWriter, r *http.Request, req *ActionRequest) {
	bookReq, err := req.ToBookRequest(h.service.Location())
	if err != nil {
		h.respondParseError(w, req.Action, err)
		return
	}

	result, err := h.service.Book(r.Context(), bookReq)
	if err != nil {
		h.respondServiceError(w, req.Action, err)
		return
	}

	h.logger.Info("POST /booking/appointment - book: event_id=%s, start=%s", result.EventID, result.Display)
	h.respond(w, http.StatusCreated, req.Action, fmt.Sprintf(msgBooked, result.Display, result.CustomerName), result)
}

func (h *Handler) respond(w http.ResponseWriter, status int, action, message string, data interface{}) {
	handlers.RespondJSON(w, status, ActionResponse{
		Success: true,
		Action:  action,
		Message: message,
		Data:    data,
	})
}

func (h *Handler) respondParseError(w http.ResponseWriter, action string, err error) {
	h.logger.Warn("POST /booking/appointment - %s: failed to parse request: %v", action, err)
	if errors.Is(err, errInvalidTime) {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	handlers.RespondBadRequest(w, msgInvalidDate)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, action string, err error) {
	if message, ok := handlers.PolicyMessage(err); ok {
		h.logger.Warn("POST /booking/appointment - %s: policy violation: %v", action, err)
		handlers.RespondBadRequest(w, message)
		return
	}

	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("POST /booking/appointment - %s: invalid input: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, bookings.ErrSlotConflict):
		h.logger.Warn("POST /booking/appointment - %s: slot taken: %v", action, err)
		handlers.RespondConflict(w, msgSlotTaken)

	case errors.Is(err, bookings.ErrNoAvailableSlot):
		h.logger.Info("POST /booking/appointment - %s: no available slot", action)
		handlers.RespondNotFound(w, msgNoSlot)

	case errors.Is(err, bookings.ErrGatewayUnavailable):
		h.logger.Error("POST /booking/appointment - %s: calendar unavailable: %v", action, err)
		handlers.RespondServiceUnavailable(w, h.fallbackPhone)

	default:
		h.logger.Error("POST /booking/appointment - %s: failed: %v", action, err)
		handlers.RespondInternalError(w)
	}
}
