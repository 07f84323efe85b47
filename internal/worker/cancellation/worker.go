package cancellation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/queue/mailqueue"
	"github.com/m04kA/SMC-AppointmentService/internal/mailer"
)

const dequeueTimeout = 5 * time.Second

// Worker потребитель очереди cancellation-mail.
// Доставка best-effort / at-least-once: битые задачи логируются и
// пропускаются, ошибка SMTP не останавливает цикл.
type Worker struct {
	queue  MailQueue
	sender MailSender
	locale string
	logger Logger
}

// NewWorker создает воркер отправки писем об отмене
func NewWorker(queue MailQueue, sender MailSender, locale string, logger Logger) *Worker {
	return &Worker{
		queue:  queue,
		sender: sender,
		locale: locale,
		logger: logger,
	}
}

// Run крутит цикл обработки до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("CancellationWorker: started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("CancellationWorker: stopped")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if errors.Is(err, mailqueue.ErrEmpty) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Error("CancellationWorker: dequeue failed: %v", err)
			continue
		}

		if err := w.process(job); err != nil {
			w.logger.Error("CancellationWorker: job id=%s failed: %v", job.ID, err)
		}
	}
}

// process обрабатывает одну задачу очереди
func (w *Worker) process(job *mailqueue.Job) error {
	if job.Kind != mailqueue.KindCancellationMail {
		w.logger.Warn("CancellationWorker: skipping job id=%s of unknown kind %q", job.ID, job.Kind)
		return nil
	}

	var mail mailqueue.CancellationMail
	if err := json.Unmarshal(job.Payload, &mail); err != nil {
		return err
	}

	subject, body := mailer.BuildCancellationMail(&mail, w.locale)

	if err := w.sender.Send(mail.ProviderEmail, subject, body); err != nil {
		return err
	}

	w.logger.Info("CancellationWorker: sent cancellation mail for appointment id=%d to %s",
		mail.AppointmentID, mail.ProviderEmail)
	return nil
}
