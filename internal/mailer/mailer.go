package mailer

import (
	"fmt"
	"log/slog"

	config "github.com/maheshrc27/pixelgram/configs"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendOTP(username, email, code string) error
	SendWelcome(username, email string) error
}

type mailer struct {
	cfg config.Config
}

func NewMailer(cfg config.Config) Mailer {
	return &mailer{cfg: cfg}
}

func (m *mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTP.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.SMTP.Host, m.cfg.SMTP.Port, m.cfg.SMTP.Username, m.cfg.SMTP.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (m *mailer) SendOTP(username, email, code string) error {
	subject := fmt.Sprintf("%s, your verification code", username)
	body := fmt.Sprintf("Your verification code is: %s\n\nIt expires in 5 minutes.", code)
	return m.send(email, subject, body)
}

func (m *mailer) SendWelcome(username, email string) error {
	subject := fmt.Sprintf("%s, your account was created successfully", username)
	body := "Welcome to Pixelgram!"
	return m.send(email, subject, body)
}
