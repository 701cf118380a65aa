package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// ErrEmailNotConfigured is returned when notifications are disabled in config
var ErrEmailNotConfigured = errors.New("email service not configured")

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for links back into the web UI
}

// Notifier sends ticket lifecycle notifications. The no-op path keeps
// call sites unconditional when email is disabled.
type Notifier interface {
	SendTicketCreated(to, ticketNumber, title string) error
	SendTicketAssigned(to, ticketNumber, title string) error
	SendTicketStatusChanged(to, ticketNumber, title, oldStatus, newStatus string) error
	SendCommentAdded(to, ticketNumber, title, author string) error
}

type SMTPNotifier struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPNotifier(config SMTPConfig) *SMTPNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPNotifier{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPNotifier) SendTicketCreated(to, ticketNumber, title string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, ticketNumber)

	subject := fmt.Sprintf("[%s] Ticket created: %s", ticketNumber, title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket Created</h2>
			<p>Your ticket <strong>%s</strong> has been created:</p>
			<p>%s</p>
			<p><a href="%s">View ticket</a></p>
		</body>
		</html>
	`, ticketNumber, title, ticketURL)

	plainBody := fmt.Sprintf(`
Ticket Created

Your ticket %s has been created:
%s

View it at:
%s
	`, ticketNumber, title, ticketURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendTicketAssigned(to, ticketNumber, title string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, ticketNumber)

	subject := fmt.Sprintf("[%s] Ticket assigned to you: %s", ticketNumber, title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket Assigned</h2>
			<p>Ticket <strong>%s</strong> has been assigned to you:</p>
			<p>%s</p>
			<p><a href="%s">View ticket</a></p>
		</body>
		</html>
	`, ticketNumber, title, ticketURL)

	plainBody := fmt.Sprintf(`
Ticket Assigned

Ticket %s has been assigned to you:
%s

View it at:
%s
	`, ticketNumber, title, ticketURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendTicketStatusChanged(to, ticketNumber, title, oldStatus, newStatus string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, ticketNumber)

	subject := fmt.Sprintf("[%s] Status changed to %s: %s", ticketNumber, newStatus, title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket Status Changed</h2>
			<p>Ticket <strong>%s</strong> moved from %s to %s:</p>
			<p>%s</p>
			<p><a href="%s">View ticket</a></p>
		</body>
		</html>
	`, ticketNumber, oldStatus, newStatus, title, ticketURL)

	plainBody := fmt.Sprintf(`
Ticket Status Changed

Ticket %s moved from %s to %s:
%s

View it at:
%s
	`, ticketNumber, oldStatus, newStatus, title, ticketURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendCommentAdded(to, ticketNumber, title, author string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, ticketNumber)

	subject := fmt.Sprintf("[%s] New comment from %s: %s", ticketNumber, author, title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Comment</h2>
			<p>%s commented on ticket <strong>%s</strong>:</p>
			<p>%s</p>
			<p><a href="%s">View ticket</a></p>
		</body>
		</html>
	`, author, ticketNumber, title, ticketURL)

	plainBody := fmt.Sprintf(`
New Comment

%s commented on ticket %s:
%s

View it at:
%s
	`, author, ticketNumber, title, ticketURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// NopNotifier drops all notifications.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier { return &NopNotifier{} }

func (NopNotifier) SendTicketCreated(to, ticketNumber, title string) error  { return nil }
func (NopNotifier) SendTicketAssigned(to, ticketNumber, title string) error { return nil }
func (NopNotifier) SendTicketStatusChanged(to, ticketNumber, title, oldStatus, newStatus string) error {
	return nil
}
func (NopNotifier) SendCommentAdded(to, ticketNumber, title, author string) error { return nil }
