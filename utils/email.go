package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Inbox receives the messages sent through the contact form
	Inbox string
}

// Mailer sends a single HTML message
type Mailer interface {
	Send(to, replyTo, subject, body string) error
}

// SMTPMailer delivers through an SMTP relay with gomail
type SMTPMailer struct {
	cfg    EmailConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a mailer for cfg
func NewSMTPMailer(cfg EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send sends an email
func (m *SMTPMailer) Send(to, replyTo, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	if replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// ContactEmail renders the body of a contact form message. User input is escaped.
func ContactEmail(name, email, message string) (subject, body string) {
	subject = fmt.Sprintf("[%s] Nuevo mensaje de contacto de %s", AppName, SanitizeString(name))
	body = fmt.Sprintf(`
		<h2>Nuevo mensaje de contacto</h2>
		<p><strong>Nombre:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p>%s</p>
	`, SanitizeString(name), SanitizeString(email), SanitizeString(message))
	return subject, body
}
