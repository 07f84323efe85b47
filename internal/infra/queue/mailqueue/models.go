package mailqueue

import (
	"encoding/json"
	"time"
)

// KindCancellationMail тип задачи на отправку письма об отмене записи
const KindCancellationMail = "cancellation-mail"

// Job обертка задачи в очереди.
// ID используется как idempotency key на стороне потребителя.
type Job struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	Payload    json.RawMessage `json:"payload"`
}

// CancellationMail полный снимок отмененной записи для письма провайдеру.
// Снимок самодостаточен: воркер не ходит ни в БД, ни в user service.
type CancellationMail struct {
	AppointmentID int64     `json:"appointmentId"`
	Date          time.Time `json:"date"`
	CanceledAt    time.Time `json:"canceledAt"`
	UserName      string    `json:"userName"`
	ProviderName  string    `json:"providerName"`
	ProviderEmail string    `json:"providerEmail"`
}
