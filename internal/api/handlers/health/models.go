package health

import "time"

// Статусы зависимостей
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// HealthResponse ответ GET /health
type HealthResponse struct {
	Status             string            `json:"status"`
	Timestamp          time.Time         `json:"timestamp"`
	CalendarConfigured bool              `json:"googleCalendarConfigured"`
	SMSConfigured      bool              `json:"twilioConfigured"`
	Services           map[string]string `json:"services"`
}

// DescriptorResponse ответ GET /
type DescriptorResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

func availability(ok bool) string {
	if ok {
		return StatusAvailable
	}
	return StatusUnavailable
}
