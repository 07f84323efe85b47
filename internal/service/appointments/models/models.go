package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
)

// Request модели

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID int64
	Page   int
}

// GetProviderScheduleRequest запрос расписания провайдера на день
type GetProviderScheduleRequest struct {
	UserID int64     // ID запрашивающего (должен быть провайдером)
	Date   time.Time // Любой момент нужного дня
}

// Response модели

// ProviderInfo отображаемая информация о провайдере
type ProviderInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AppointmentResponse запись в списке клиента
type AppointmentResponse struct {
	ID         int64         `json:"id"`
	Date       time.Time     `json:"date"`
	Past       bool          `json:"past"`
	Cancelable bool          `json:"cancelable"`
	Provider   *ProviderInfo `json:"provider,omitempty"`
}

// AppointmentListResponse страница записей пользователя
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Page         int                   `json:"page"`
}

// ScheduleEntryResponse запись в расписании провайдера
type ScheduleEntryResponse struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"userId"`
	Date   time.Time `json:"date"`
	Past   bool      `json:"past"`
}

// ScheduleResponse расписание провайдера на день
type ScheduleResponse struct {
	Date         string                  `json:"date"`
	Appointments []ScheduleEntryResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует доменную запись в элемент списка
func FromDomainAppointment(appt *domain.Appointment, provider *userservice.User, now time.Time) AppointmentResponse {
	resp := AppointmentResponse{
		ID:         appt.ID,
		Date:       appt.Date,
		Past:       appt.IsPast(now),
		Cancelable: appt.IsCancelable(now),
	}
	if provider != nil {
		resp.Provider = &ProviderInfo{
			ID:        provider.ID,
			Name:      provider.Name,
			AvatarURL: provider.AvatarURL,
		}
	}
	return resp
}

// FromDomainScheduleEntry конвертирует доменную запись в элемент расписания
func FromDomainScheduleEntry(appt *domain.Appointment, now time.Time) ScheduleEntryResponse {
	return ScheduleEntryResponse{
		ID:     appt.ID,
		UserID: appt.UserID,
		Date:   appt.Date,
		Past:   appt.IsPast(now),
	}
}
