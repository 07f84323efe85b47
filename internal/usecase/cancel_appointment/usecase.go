package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/queue/mailqueue"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/timeutil"
)

// UseCase use case для отмены записи
type UseCase struct {
	apptRepo     AppointmentRepository
	userClient   UserServiceClient
	mailQueue    MailQueue
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	userClient UserServiceClient,
	mailQueue MailQueue,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		userClient:   userClient,
		mailQueue:    mailQueue,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены записи.
// Все проверки выполняются до мутации; постановка почтовой задачи
// best-effort и не откатывает уже зафиксированную отмену.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: user=%d, appointment=%d", req.UserID, req.AppointmentID)

	if req.UserID <= 0 || req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	// 1. Загружаем запись
	appt, err := uc.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: repository error for id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 2. Проверка владения: отменить запись может только её клиент
	if appt.UserID != req.UserID {
		uc.logger.Warn("CancelAppointment: user=%d does not own appointment id=%d",
			req.UserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	// 3. Отмена терминальна
	if appt.IsCanceled() {
		uc.logger.Warn("CancelAppointment: appointment id=%d already canceled", req.AppointmentID)
		return nil, ErrAlreadyCanceled
	}

	// 4. Дедлайн отмены: за 2 часа до начала.
	// Граница: в момент date-2h-1s отмена еще проходит, в date-2h+1s — нет.
	now := uc.timeProvider.Now()
	deadline := timeutil.HoursBefore(appt.Date, domain.CancellationNoticeHours)
	if deadline.Before(now) {
		uc.logger.Warn("CancelAppointment: appointment id=%d inside cancellation window", req.AppointmentID)
		return nil, ErrTooLateToCancel
	}

	// 5. Собираем данные для письма до мутации. Ошибка lookup деградирует
	// до отмены без письма — она не должна блокировать отмену.
	mail := uc.buildMailSnapshot(ctx, appt)

	// 6. Выставляем canceled_at
	if err := uc.apptRepo.Cancel(ctx, appt.ID, now); err != nil {
		switch {
		case errors.Is(err, apptRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, apptRepo.ErrAlreadyCanceled):
			return nil, ErrAlreadyCanceled
		default:
			uc.logger.Error("CancelAppointment: failed to cancel id=%d: %v", req.AppointmentID, err)
			return nil, fmt.Errorf("%w: failed to cancel: %v", ErrInternal, err)
		}
	}
	appt.CanceledAt = &now
	appt.UpdatedAt = now

	uc.logger.Info("CancelAppointment: successfully canceled appointment id=%d", appt.ID)

	// 7. Fire-and-forget постановка почтовой задачи
	if mail != nil {
		mail.CanceledAt = now
		if err := uc.mailQueue.Enqueue(ctx, mailqueue.KindCancellationMail, mail); err != nil {
			uc.logger.Error("CancelAppointment: failed to enqueue cancellation mail for id=%d: %v",
				appt.ID, err)
		} else {
			uc.logger.Info("CancelAppointment: cancellation mail enqueued for id=%d", appt.ID)
		}
	}

	return &Response{
		ID:         appt.ID,
		UserID:     appt.UserID,
		ProviderID: appt.ProviderID,
		Date:       appt.Date,
		CanceledAt: appt.CanceledAt,
		Past:       appt.IsPast(now),
		Cancelable: appt.IsCancelable(now),
		CreatedAt:  appt.CreatedAt,
		UpdatedAt:  appt.UpdatedAt,
	}, nil
}

// buildMailSnapshot собирает самодостаточный снимок записи для письма.
// При недоступности UserService возвращает nil: отмена важнее письма.
func (uc *UseCase) buildMailSnapshot(ctx context.Context, appt *domain.Appointment) *mailqueue.CancellationMail {
	provider, err := uc.userClient.GetUser(ctx, appt.ProviderID)
	if err != nil {
		uc.logger.Error("CancelAppointment: failed to get provider id=%d for mail: %v",
			appt.ProviderID, err)
		return nil
	}

	user, err := uc.userClient.GetUser(ctx, appt.UserID)
	if err != nil {
		uc.logger.Error("CancelAppointment: failed to get user id=%d for mail: %v",
			appt.UserID, err)
		return nil
	}

	return &mailqueue.CancellationMail{
		AppointmentID: appt.ID,
		Date:          appt.Date,
		UserName:      user.Name,
		ProviderName:  provider.Name,
		ProviderEmail: provider.Email,
	}
}
