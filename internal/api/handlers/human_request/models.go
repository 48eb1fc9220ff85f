package human_request

import (
	"fmt"
	"strings"
)

const (
	defaultReason  = "Všeobecná požiadavka o kontakt"
	defaultUrgency = "stredná"
)

// HumanRequest HTTP request model
// Поля в snake_case, так их шлет голосовой ассистент
type HumanRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Reason        *string `json:"reason,omitempty"`
	Urgency       *string `json:"urgency,omitempty"`
}

// HumanResponse HTTP response model
type HumanResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	MessageSID    string `json:"messageSid"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// SMSBody текст уведомления для сотрудников автосервиса
func (r *HumanRequest) SMSBody() string {
	reason := defaultReason
	if r.Reason != nil && strings.TrimSpace(*r.Reason) != "" {
		reason = *r.Reason
	}
	urgency := defaultUrgency
	if r.Urgency != nil && strings.TrimSpace(*r.Urgency) != "" {
		urgency = *r.Urgency
	}

	return fmt.Sprintf("AUTOSERVIS - POŽIADAVKA O KONTAKT\n\nZákazník: %s\nTelefón: %s\nDôvod: %s\nNaliehavosť: %s",
		r.CustomerName, r.CustomerPhone, reason, urgency)
}
