package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/timeutil"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// isPastDate проверяет, что дата записи уже прошла.
// Сравнивается начало дня записи с точным текущим моментом: проверка
// на прошлое нормализована к началу дня, проверка занятости слота — нет.
// Асимметрия сохранена намеренно, см. DESIGN.md.
func isPastDate(date, now time.Time) bool {
	return timeutil.StartOfDay(date).Before(now)
}
