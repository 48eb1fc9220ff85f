package googlecalendar

import "errors"

var (
	// ErrCredentialsMissing возвращается, когда не задан ни JSON сервисного аккаунта, ни путь к ключу
	ErrCredentialsMissing = errors.New("googlecalendar client: credentials are not configured")

	// ErrEventNotFound возвращается, когда событие не найдено или уже удалено (404/410)
	ErrEventNotFound = errors.New("googlecalendar client: event not found")

	// ErrConflict возвращается, когда календарь сообщил о конфликте при записи (409)
	ErrConflict = errors.New("googlecalendar client: conflict")

	// ErrUnavailable возвращается при ошибках авторизации, сети, таймаутах и прочих сбоях API
	ErrUnavailable = errors.New("googlecalendar client: calendar unavailable")

	// ErrInvalidResponse возвращается, когда ответ API не удалось разобрать
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")
)
