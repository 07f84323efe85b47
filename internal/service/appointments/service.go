package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/timeutil"
)

// Service read-сторона записей: список записей клиента и расписание
// провайдера. Пишущих операций здесь нет, инварианты read-модели —
// только активные записи, сортировка по дате по возрастанию.
type Service struct {
	apptRepo     AppointmentRepository
	userClient   UserServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	apptRepo AppointmentRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:     apptRepo,
		userClient:   userClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetUserAppointments возвращает страницу активных записей пользователя,
// обогащенную отображаемой информацией о провайдерах.
// Размер страницы фиксированный (domain.AppointmentsPageSize).
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	s.logger.Info("GetUserAppointments: user=%d, page=%d", req.UserID, page)

	appts, err := s.apptRepo.GetActiveByUser(ctx, req.UserID, page)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	// Провайдеров дедуплицируем в рамках запроса, чтобы не ходить
	// в UserService по одному и тому же ID на каждую запись
	providers := make(map[int64]*userClient.User)
	responses := make([]models.AppointmentResponse, 0, len(appts))

	for _, appt := range appts {
		provider, ok := providers[appt.ProviderID]
		if !ok {
			provider, err = s.userClient.GetUser(ctx, appt.ProviderID)
			if err != nil {
				// Список важнее карточки провайдера: оставляем блок пустым
				s.logger.Warn("GetUserAppointments: failed to get provider id=%d: %v",
					appt.ProviderID, err)
				provider = nil
			}
			providers[appt.ProviderID] = provider
		}
		responses = append(responses, models.FromDomainAppointment(appt, provider, now))
	}

	s.logger.Info("GetUserAppointments: fetched %d appointments for user=%d", len(responses), req.UserID)

	return &models.AppointmentListResponse{
		Appointments: responses,
		Page:         page,
	}, nil
}

// GetProviderSchedule возвращает активные записи провайдера за календарный
// день [startOfDay, endOfDay]. Запрашивающий обязан быть провайдером.
func (s *Service) GetProviderSchedule(ctx context.Context, req *models.GetProviderScheduleRequest) (*models.ScheduleResponse, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	s.logger.Info("GetProviderSchedule: provider=%d, date=%s",
		req.UserID, req.Date.Format(domain.DateFormat))

	user, err := s.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return nil, ErrNotAProvider
		}
		s.logger.Error("GetProviderSchedule: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.Provider {
		s.logger.Warn("GetProviderSchedule: user id=%d is not a provider", req.UserID)
		return nil, ErrNotAProvider
	}

	from := timeutil.StartOfDay(req.Date)
	to := timeutil.EndOfDay(req.Date)

	appts, err := s.apptRepo.GetActiveByProviderInRange(ctx, req.UserID, from, to)
	if err != nil {
		s.logger.Error("GetProviderSchedule: repository error for provider=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetProviderSchedule - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	entries := make([]models.ScheduleEntryResponse, 0, len(appts))
	for _, appt := range appts {
		entries = append(entries, models.FromDomainScheduleEntry(appt, now))
	}

	s.logger.Info("GetProviderSchedule: fetched %d appointments for provider=%d", len(entries), req.UserID)

	return &models.ScheduleResponse{
		Date:         from.Format(domain.DateFormat),
		Appointments: entries,
	}, nil
}
