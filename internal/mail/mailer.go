package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer отправляет письмо с кодом подтверждения.
type Mailer interface {
	SendCode(ctx context.Context, email, code string) error
}

// SMTPConfig содержит параметры SMTP сервера.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer отправляет письма через SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer создаёт SMTP отправителя.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendCode отправляет письмо с кодом подтверждения входа.
func (m *SMTPMailer) SendCode(ctx context.Context, email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Код подтверждения Digital Menu")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Ваш код подтверждения: %s\n\nКод действителен 10 минут. Если вы не запрашивали вход, проигнорируйте это письмо.",
		code,
	))

	// gomail не принимает контекст; проверяем отмену хотя бы до отправки.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: не удалось отправить письмо: %w", err)
	}

	return nil
}
