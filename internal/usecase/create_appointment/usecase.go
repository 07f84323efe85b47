package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	userClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/datefmt"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	apptRepo         AppointmentRepository
	notificationRepo NotificationRepository
	userClient       UserServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	locale           string
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	notificationRepo NotificationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	locale string,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:         apptRepo,
		notificationRepo: notificationRepo,
		userClient:       userClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		locale:           locale,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости слота и вставка выполняются в сериализуемой транзакции:
// из двух конкурентных запросов на один слот (provider, момент) выигрывает
// ровно один, второй получает ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, provider=%d, date=%s",
		req.UserID, req.ProviderID, req.Date.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что адресат записи — провайдер.
	// Порядок проверок наблюдаем снаружи: запрос, проваливающий и эту
	// проверку, и проверку слота, получает именно ErrNotAProvider.
	provider, err := uc.userClient.GetUser(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: provider id=%d not found", req.ProviderID)
			return nil, ErrNotAProvider
		}
		uc.logger.Error("CreateAppointment: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.Provider {
		uc.logger.Warn("CreateAppointment: user id=%d is not a provider", req.ProviderID)
		return nil, ErrNotAProvider
	}

	// 4. Проверяем, что дата не в прошлом
	if isPastDate(req.Date, now) {
		uc.logger.Warn("CreateAppointment: past date %s rejected", req.Date.Format(time.RFC3339))
		return nil, ErrPastDate
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Проверка слота + вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверяем занятость слота: активная запись провайдера
		// на этот точный момент
		_, err := uc.apptRepo.GetActiveByProviderAndDate(txCtx, req.ProviderID, req.Date)
		if err == nil {
			uc.logger.Warn("CreateAppointment: slot taken, provider=%d, date=%s",
				req.ProviderID, req.Date.Format(time.RFC3339))
			return ErrSlotNotAvailable
		}
		if !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Error("CreateAppointment: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		// 5.2. Создаем активную запись
		created, err := uc.apptRepo.Create(txCtx, &domain.Appointment{
			UserID:     req.UserID,
			ProviderID: req.ProviderID,
			Date:       req.Date,
		})
		if err != nil {
			// Уникальный индекс подстраховывает от гонки конкурентных вставок
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot taken on insert, provider=%d, date=%s",
					req.ProviderID, req.Date.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 6. Уведомляем провайдера. Запись уже зафиксирована: ошибка здесь
	// логируется и не отменяет бронирование.
	uc.notifyProvider(ctx, req, result)

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		ProviderID: result.ProviderID,
		Date:       result.Date,
		CanceledAt: result.CanceledAt,
		Past:       result.IsPast(now),
		Cancelable: result.IsCancelable(now),
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// notifyProvider создает уведомление о новой записи в ленте провайдера
func (uc *UseCase) notifyProvider(ctx context.Context, req *Request, appt *domain.Appointment) {
	requester, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get requester id=%d for notification: %v",
			req.UserID, err)
		return
	}

	content := notificationContent(requester.Name, appt.Date, uc.locale)

	if err := uc.notificationRepo.Create(ctx, &domain.Notification{
		Content: content,
		UserID:  req.ProviderID,
	}); err != nil {
		uc.logger.Error("CreateAppointment: failed to create notification for provider id=%d: %v",
			req.ProviderID, err)
		return
	}

	uc.logger.Info("CreateAppointment: notification created for provider id=%d", req.ProviderID)
}

// notificationContent собирает локализованный текст уведомления
func notificationContent(userName string, date time.Time, locale string) string {
	formattedDate := datefmt.Format(date, locale)

	switch locale {
	case datefmt.LocalePT:
		return fmt.Sprintf("Novo agendamento %s para o %s", userName, formattedDate)
	default:
		return fmt.Sprintf("New appointment: %s for %s", userName, formattedDate)
	}
}
