package twilio

import "errors"

var (
	// ErrNotConfigured возвращается, когда не заданы учетные данные Twilio
	ErrNotConfigured = errors.New("twilio client: not configured")

	// ErrRejected возвращается, когда Twilio отклонил сообщение (4xx, например неверный номер)
	ErrRejected = errors.New("twilio client: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("twilio client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("twilio client: invalid response")
)
