package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/vpetrenko/todo-service/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendWelcome sends a greeting after successful registration
func (s *Sender) SendWelcome(to string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Welcome to Todo"

	body := "Hello,\n\n" +
		"Your account has been created. Log in to start tracking your tasks.\n" +
		"\nBest regards,\nTodo Service"
	e.Text = []byte(body)

	return s.send(e)
}

// SendTaskDigest sends a reminder listing the user's incomplete tasks
func (s *Sender) SendTaskDigest(to string, titles []string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your open tasks"

	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nYou have %d open task(s):\n\n", len(titles))
	for _, title := range titles {
		fmt.Fprintf(&b, "  - %s\n", title)
	}
	b.WriteString("\nBest regards,\nTodo Service")
	e.Text = []byte(b.String())

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", e.To[0], err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", e.To[0], e.Subject)
	return nil
}
