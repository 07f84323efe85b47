package mailer

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/queue/mailqueue"
	"github.com/m04kA/SMC-AppointmentService/pkg/datefmt"
)

// BuildCancellationMail собирает тему и тело письма провайдеру об отмене
// записи. Тексты локализованы той же функцией форматирования даты, что и
// уведомления о новой записи.
func BuildCancellationMail(m *mailqueue.CancellationMail, locale string) (subject, body string) {
	formattedDate := datefmt.Format(m.Date, locale)

	switch locale {
	case datefmt.LocalePT:
		subject = "Agendamento cancelado"
		body = fmt.Sprintf(
			"Olá, %s,\r\n\r\nO agendamento de %s para o %s foi cancelado pelo cliente.\r\n\r\nID do agendamento: %d\r\n",
			m.ProviderName, m.UserName, formattedDate, m.AppointmentID,
		)
	default:
		subject = "Appointment canceled"
		body = fmt.Sprintf(
			"Hello %s,\r\n\r\nThe appointment of %s scheduled for %s was canceled by the client.\r\n\r\nAppointment ID: %d\r\n",
			m.ProviderName, m.UserName, formattedDate, m.AppointmentID,
		)
	}
	return subject, body
}
