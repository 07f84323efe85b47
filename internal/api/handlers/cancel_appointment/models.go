package cancel_appointment

import (
	"time"

	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *AppointmentResponse {
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
