package notification

import "errors"

var (
	// ErrInsert возвращается при ошибке записи уведомления
	ErrInsert = errors.New("notification.repository: failed to insert notification")
)
