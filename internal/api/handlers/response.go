package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-AutoservisBooking/internal/service/policy"
)

const maxBodyBytes = 1 << 20

const (
	msgInternalError      = "Nastala interná chyba, skúste to prosím neskôr"
	msgServiceUnavailable = "Rezervačný systém je momentálne nedostupný. Zavolajte nám prosím na číslo %s"

	msgNonWorkingDay        = "V tento deň nepracujeme, vyberte prosím pracovný deň (pondelok - piatok)"
	msgOutsideBusinessHours = "Zvolený čas je mimo otváracích hodín"
	msgInThePast            = "Zvolený čas už uplynul"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error"`
	FallbackPhone string `json:"fallbackPhone,omitempty"`
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondServiceUnavailable 503 с телефоном для связи вручную
func RespondServiceUnavailable(w http.ResponseWriter, fallbackPhone string) {
	RespondJSON(w, http.StatusServiceUnavailable, ErrorResponse{
		Success:       false,
		Error:         fmt.Sprintf(msgServiceUnavailable, fallbackPhone),
		FallbackPhone: fallbackPhone,
	})
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON читает тело запроса в dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

// PolicyMessage сообщение для клиента о нарушении правил записи
// Для ошибок другого типа возвращает false
func PolicyMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, policy.ErrNonWorkingDay):
		return msgNonWorkingDay, true
	case errors.Is(err, policy.ErrOutsideBusinessHours):
		return msgOutsideBusinessHours, true
	case errors.Is(err, policy.ErrInThePast):
		return msgInThePast, true
	default:
		return "", false
	}
}
