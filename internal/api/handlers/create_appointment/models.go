package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/timeutil"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProviderID int64  `json:"providerId"`
	Date       string `json:"date"` // ISO 8601, например "2025-10-15T10:00:00-03:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	ProviderID int64   `json:"providerId"`
	Date       string  `json:"date"`
	CanceledAt *string `json:"canceledAt"`
	Past       bool    `json:"past"`
	Cancelable bool    `json:"cancelable"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	date, err := timeutil.ParseISO(r.Date)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:     userID,
		ProviderID: r.ProviderID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	var canceledAt *string
	if resp.CanceledAt != nil {
		canceledAt = ptr.Ptr(resp.CanceledAt.Format(time.RFC3339))
	}

	return &AppointmentResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		ProviderID: resp.ProviderID,
		Date:       resp.Date.Format(time.RFC3339),
		CanceledAt: canceledAt,
		Past:       resp.Past,
		Cancelable: resp.Cancelable,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
