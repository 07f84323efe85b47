package cancel_appointment

import "time"

// Request модель запроса на отмену записи
type Request struct {
	UserID        int64 // ID клиента (из аутентифицированной сессии)
	AppointmentID int64 // ID отменяемой записи
}

// Response модель ответа с отмененной записью
type Response struct {
	ID         int64      // ID записи
	UserID     int64      // ID клиента
	ProviderID int64      // ID провайдера
	Date       time.Time  // Момент записи
	CanceledAt *time.Time // Момент отмены
	Past       bool       // Вычисляемое поле: дата уже прошла
	Cancelable bool       // Всегда false после отмены

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
