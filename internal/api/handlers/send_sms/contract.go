package send_sms

import (
	"context"

	"github.com/m04kA/SMC-AutoservisBooking/internal/integrations/twilio"
)

type SMSSender interface {
	Configured() bool
	SendSMS(ctx context.Context, to, body string) (*twilio.Message, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
