package queue

import (
	"github.com/maheshrc27/pixelgram/internal/mailer"
)

type Queue struct {
	m mailer.Mailer
}

func NewQueue(m mailer.Mailer) *Queue {
	return &Queue{
		m: m,
	}
}

const (
	TaskTypeSendOTP     = "email:otp"
	TaskTypeSendWelcome = "email:welcome"
)

type EmailPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Code     string `json:"code,omitempty"`
}
