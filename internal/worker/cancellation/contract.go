package cancellation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/queue/mailqueue"
)

// MailQueue источник почтовых задач
type MailQueue interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*mailqueue.Job, error)
}

// MailSender отправляет письмо получателю
type MailSender interface {
	Send(to string, subject string, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
