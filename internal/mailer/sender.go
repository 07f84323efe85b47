package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender отправляет письмо получателю
type Sender interface {
	Send(to string, subject string, body string) error
}

// SMTPSender отправляет письма через SMTP без аутентификации
// (совместимо с Mailpit/Mailhog в dev окружении).
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender создает SMTP отправитель
func NewSMTPSender(host string, port int, from string) *SMTPSender {
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@smc-appointment.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", strings.TrimSpace(host), port),
		from: from,
	}
}

// Send отправляет письмо
func (s *SMTPSender) Send(to string, subject string, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// buildMessage собирает минимальное RFC 5322 письмо в plain text
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
