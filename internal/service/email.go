package service

import (
	"gopkg.in/gomail.v2"
)

// GomailMailer delivers mail through an SMTP relay using gomail. A
// zero Host disables delivery; Send then reports an error the caller
// logs and moves past.
type GomailMailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Send delivers a single HTML message.
func (m GomailMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	return d.DialAndSend(msg)
}
