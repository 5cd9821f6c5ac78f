package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/leavehub/leave-backend-go/internal/config"
	"github.com/leavehub/leave-backend-go/internal/pkg/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends the transactional emails of the leave and wellness flows
type EmailService interface {
	SendLeaveRequest(data LeaveRequestData) error
	SendLeaveStatusUpdate(to string, data LeaveStatusData) error
	SendEventRegistration(to string, data EventRegistrationData) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	backoff   time.Duration
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		backoff:   time.Second,
	}, nil
}

type LeaveRequestData struct {
	EmployeeName  string
	EmployeeEmail string
	LeaveType     string
	StartDate     string
	EndDate       string
	Days          int
	Description   string
	ReviewLink    string
}

// SendLeaveRequest notifies the configured admin mailbox; it is a no-op when none is set
func (s *emailServiceImpl) SendLeaveRequest(data LeaveRequestData) error {
	if s.cfg.AdminEmail == "" {
		slog.Debug("ADMIN_EMAIL not configured, skipping leave request email")
		return nil
	}
	data.ReviewLink = s.cfg.FrontendURL + "/admin/leaves"

	subject := fmt.Sprintf("New %s leave request from %s", data.LeaveType, data.EmployeeName)
	return s.render(s.cfg.AdminEmail, subject, "leave_request.html", data)
}

type LeaveStatusData struct {
	EmployeeName string
	LeaveType    string
	StartDate    string
	EndDate      string
	Status       string
	Days         int
	Notes        string
	LeavesLink   string
}

func (s *emailServiceImpl) SendLeaveStatusUpdate(to string, data LeaveStatusData) error {
	data.LeavesLink = s.cfg.FrontendURL + "/leaves"

	subject := fmt.Sprintf("Your leave request has been %s", data.Status)
	return s.render(to, subject, "leave_status.html", data)
}

type EventRegistrationData struct {
	UserName   string
	EventTitle string
	EventDate  string
	StartTime  string
	EndTime    string
	Location   string
	EventsLink string
}

func (s *emailServiceImpl) SendEventRegistration(to string, data EventRegistrationData) error {
	data.EventsLink = s.cfg.FrontendURL + "/wellness/events"

	subject := fmt.Sprintf("Registration confirmed: %s", data.EventTitle)
	return s.render(to, subject, "event_registration.html", data)
}

func (s *emailServiceImpl) render(to, subject, name string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		metrics.EmailsTotal.WithLabelValues(name, "template_error").Inc()
		return fmt.Errorf("failed to execute template: %w", err)
	}

	if err := s.sendHTML(to, subject, body.String()); err != nil {
		metrics.EmailsTotal.WithLabelValues(name, "failed").Inc()
		return err
	}
	metrics.EmailsTotal.WithLabelValues(name, "sent").Inc()
	return nil
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// 1s, 2s between attempts
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
