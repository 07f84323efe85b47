package cancel_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied возвращается при попытке отменить чужую запись
	ErrAccessDenied = errors.New("cancel_appointment: no permission to cancel this appointment")

	// ErrAlreadyCanceled возвращается для уже отмененной записи —
	// отмена терминальна
	ErrAlreadyCanceled = errors.New("cancel_appointment: appointment already canceled")

	// ErrTooLateToCancel возвращается внутри двухчасового окна перед записью
	ErrTooLateToCancel = errors.New("cancel_appointment: appointments can only be canceled 2 hours in advance")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
