package bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotConflict возвращается, когда выбранное время уже занято
	ErrSlotConflict = errors.New("slot is already taken")

	// ErrNotFound возвращается, когда запись не найдена в календаре
	ErrNotFound = errors.New("appointment not found")

	// ErrNoAvailableSlot возвращается, когда в окне поиска нет свободного времени
	ErrNoAvailableSlot = errors.New("no available slot in search window")

	// ErrGatewayUnavailable возвращается при недоступности календаря (сеть, авторизация, таймаут)
	// Операции с этой ошибкой не повторяются автоматически
	ErrGatewayUnavailable = errors.New("service: calendar unavailable")
)
