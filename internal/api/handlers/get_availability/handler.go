package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
)

const (
	msgInvalidDate = "Neplatný formát dátumu, očakáva sa RRRR-MM-DD"
	msgInvalidDays = "Parameter days musí byť kladné číslo"
	msgBadWindow   = "Príliš dlhé obdobie vyhľadávania"
	msgNoSlot      = "V najbližších dňoch nie je voľný termín"
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

// Handle GET /booking/availability?date=YYYY-MM-DD | ?days=N
// С date возвращает слоты дня, без него - ближайший свободный день
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.service.Location())
		if err != nil {
			h.logger.Warn("GET /booking/availability - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		result, err := h.service.CheckAvailability(r.Context(), date)
		if err != nil {
			h.respondError(w, err)
			return
		}

		h.logger.Info("GET /booking/availability - date=%s, slots=%d", result.Date, len(result.Slots))
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	days := 0
	if daysStr := query.Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /booking/availability - Invalid days: %s", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	result, err := h.service.FindNext(r.Context(), days)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("GET /booking/availability - next available %s", result.Slot.Display)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("GET /booking/availability - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgBadWindow)
	case errors.Is(err, bookings.ErrNoAvailableSlot):
		h.logger.Info("GET /booking/availability - No available slot")
		handlers.RespondNotFound(w, msgNoSlot)
	case errors.Is(err, bookings.ErrGatewayUnavailable):
		h.logger.Error("GET /booking/availability - Calendar unavailable: %v", err)
		handlers.RespondServiceUnavailable(w, h.fallbackPhone)
	default:
		h.logger.Error("GET /booking/availability - Failed: %v", err)
		handlers.RespondInternalError(w)
	}
}
