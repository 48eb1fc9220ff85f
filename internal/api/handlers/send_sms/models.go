package send_sms

// SendSMSRequest HTTP request model
type SendSMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendSMSResponse HTTP response model
type SendSMSResponse struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"messageSid"`
	To         string `json:"to"`
	Message    string `json:"message"`
}
