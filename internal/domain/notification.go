package domain

import "time"

// Notification запись ленты уведомлений провайдера.
// Append-only: создается при успешной записи, флаг Read выставляется
// отдельной фичей инбокса вне этого сервиса.
type Notification struct {
	Content   string
	UserID    int64
	Read      bool
	CreatedAt time.Time
}
