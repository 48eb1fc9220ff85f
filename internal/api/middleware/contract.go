package middleware

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type HTTPMetrics interface {
	ObserveHTTPRequest(method, route, status string, duration time.Duration)
}
