package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrNotAProvider возвращается, когда адресат записи не является провайдером
	ErrNotAProvider = errors.New("create_appointment: user is not a provider")

	// ErrPastDate возвращается при попытке записаться на прошедшую дату
	ErrPastDate = errors.New("create_appointment: past dates are not permitted")

	// ErrSlotNotAvailable возвращается, когда на этот момент у провайдера
	// уже есть активная запись
	ErrSlotNotAvailable = errors.New("create_appointment: appointment date is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
