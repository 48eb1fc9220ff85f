package human_request

import (
	"context"

	"github.com/m04kA/SMC-AutoservisBooking/internal/integrations/twilio"
)

type Notifier interface {
	Configured() bool
	Notify(ctx context.Context, body string) (*twilio.Message, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
