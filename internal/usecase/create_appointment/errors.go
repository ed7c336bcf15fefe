package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrSlotNotAvailable возвращается, когда интервал уже занят подтверждённой встречей.
	// Это штатный исход гонки двух клиентов: нужно перезапросить слоты и выбрать другое время
	ErrSlotNotAvailable = errors.New("create_appointment: slot no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
