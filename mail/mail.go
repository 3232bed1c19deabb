package mail

import (
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends a plain-text message. The reporting job depends on this
// interface only; tests swap in a recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP is the gomail-backed Mailer configured from the environment.
type SMTP struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPFromEnv() *SMTP {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	return &SMTP{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: from,
	}
}

func (s *SMTP) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}
