package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается при нарушении уникальности активного слота
	// (provider_id, date) — частичный уникальный индекс в БД
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrAlreadyCanceled возвращается при попытке отменить уже отмененную запись
	ErrAlreadyCanceled = errors.New("appointment.repository: appointment already canceled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
