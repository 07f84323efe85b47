package domain

// Business rule constants
const (
	// CancellationNoticeHours окно до начала записи, внутри которого
	// отмена запрещена
	CancellationNoticeHours = 2

	// AppointmentsPageSize размер страницы списка записей пользователя
	AppointmentsPageSize = 20
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
