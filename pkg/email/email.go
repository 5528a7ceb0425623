package email

import (
	"fmt"
	"net/smtp"
)

// Sender delivers HTML email via SMTP
type Sender struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// NewSender creates an SMTP sender
func NewSender(cfg Config) *Sender {
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &Sender{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
	}
}

// Send delivers one HTML message to the given recipients
func (s *Sender) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to[0],
		subject,
		htmlBody,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, to, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the sender has valid SMTP configuration
func (s *Sender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
