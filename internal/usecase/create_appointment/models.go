package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	UserID     int64     // ID клиента (из аутентифицированной сессии)
	ProviderID int64     // ID провайдера
	Date       time.Time // Точный момент записи
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64      // ID созданной записи
	UserID     int64      // ID клиента
	ProviderID int64      // ID провайдера
	Date       time.Time  // Момент записи
	CanceledAt *time.Time // Всегда nil для новой записи
	Past       bool       // Вычисляемое поле: дата уже прошла
	Cancelable bool       // Вычисляемое поле: запись еще можно отменить

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
