package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"
)

// Mailer sends outbound transactional mail.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password}
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	body := "You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n" +
		"Please click on the following link, or paste it into your browser to complete the process within an hour of receiving it:\n\n" +
		resetURL + "\n\n" +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"

	msg, err := m.compose(to, "Link to reset password", body)
	if err != nil {
		return fmt.Errorf("failed to compose mail: %w", err)
	}

	if m.host == "" {
		return fmt.Errorf("smtp not configured")
	}
	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(addr, auth, m.username, []string{to}, msg)
}

func (m *SMTPMailer) compose(to, subject, body string) ([]byte, error) {
	var b bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: m.username}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	w, err := mail.CreateSingleInlineWriter(&b, h)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte(body)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
