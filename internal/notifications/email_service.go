package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"audease/internal/shared/config"
)

// EmailService delivers a notification to its recipient.
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
}

type smtpEmailService struct {
	cfg config.EmailConfig
}

func NewSMTPEmailService(cfg config.EmailConfig) EmailService {
	return &smtpEmailService{cfg: cfg}
}

func (s *smtpEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("smtp host not configured")
	}

	body := renderBody(notification)
	message := s.buildMessage(notification.RecipientEmail, notification.Subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if s.cfg.SMTPPort == 465 {
		return s.sendWithTLS(addr, notification.RecipientEmail, message)
	}
	return s.sendWithSTARTTLS(addr, notification.RecipientEmail, message)
}

func (s *smtpEmailService) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: AudEase <%s>\r\n", s.cfg.FromEmail))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func (s *smtpEmailService) sendWithSTARTTLS(addr, to string, message []byte) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func (s *smtpEmailService) sendWithTLS(addr, to string, message []byte) error {
	tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("tls dial failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return fmt.Errorf("smtp client failed: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func renderBody(notification *EmailNotification) string {
	data := notification.TemplateData
	title, _ := data["event_title"].(string)
	venue, _ := data["venue_name"].(string)
	date, _ := data["date"].(string)
	start, _ := data["start_time"].(string)
	end, _ := data["end_time"].(string)
	note, _ := data["admin_note"].(string)

	var b strings.Builder
	switch notification.Type {
	case NotificationTypeBookingSubmitted:
		b.WriteString("Your booking request has been received and is awaiting review.\n\n")
	case NotificationTypeBookingApproved:
		b.WriteString("Good news! Your booking has been approved.\n\n")
	case NotificationTypeBookingRejected:
		b.WriteString("Unfortunately your booking request was not approved.\n\n")
	case NotificationTypeBookingCancelled:
		b.WriteString("Your booking has been cancelled.\n\n")
	default:
		b.WriteString("There is an update on your booking.\n\n")
	}

	b.WriteString(fmt.Sprintf("Event: %s\n", title))
	b.WriteString(fmt.Sprintf("Venue: %s\n", venue))
	b.WriteString(fmt.Sprintf("Date: %s\n", date))
	b.WriteString(fmt.Sprintf("Time: %s - %s\n", start, end))
	if note != "" {
		b.WriteString(fmt.Sprintf("\nNote from the administrator: %s\n", note))
	}
	b.WriteString("\n- AudEase Venue Booking\n")
	return b.String()
}

// MockEmailService records notifications instead of sending them.
// Used in tests and local runs without SMTP credentials.
type MockEmailService struct {
	mu   sync.Mutex
	sent []*EmailNotification
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (m *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, notification)
	return nil
}

// Sent returns a copy of everything delivered so far.
func (m *MockEmailService) Sent() []*EmailNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*EmailNotification, len(m.sent))
	copy(out, m.sent)
	return out
}
