package appointments

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrNotAProvider возвращается, когда расписание запрашивает
	// пользователь без флага provider
	ErrNotAProvider = errors.New("appointments: user is not a provider")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
