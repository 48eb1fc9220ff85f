package cancel_appointment

// CancelResponse HTTP response model
type CancelResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"eventId"`
	Message string `json:"message"`
}
