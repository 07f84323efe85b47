package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidDate  = "некорректная дата, ожидается YYYY-MM-DD"
	msgNotAProvider = "пользователь не является провайдером"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	rawDate := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid date: %q", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetProviderSchedule(r.Context(), &models.GetProviderScheduleRequest{
		UserID: userID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrNotAProvider):
			h.logger.Warn("GET /schedule - Not a provider: user_id=%d", userID)
			handlers.RespondUnauthorized(w, msgNotAProvider)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid input: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /schedule - Failed to get schedule: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule - Listed %d appointments: provider_id=%d, date=%s",
		len(result.Appointments), userID, rawDate)
	handlers.RespondJSON(w, http.StatusOK, result)
}
