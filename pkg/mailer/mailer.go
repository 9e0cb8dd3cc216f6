package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"interview-booking/pkg/utils"

	"go.uber.org/zap"
)

// SessionReminderParams carries everything a reminder email needs.
type SessionReminderParams struct {
	To             string
	RecipientName  string
	OtherPartyName string
	Date           string
	StartTime      string
	MinutesToStart int
}

// EmailService is the narrow notification interface the core depends on.
// Send failures are logged and swallowed by callers, never propagated.
type EmailService interface {
	SendSessionReminder(ctx context.Context, p SessionReminderParams) error
	SendInterviewerApproval(ctx context.Context, to, name string, approved bool) error
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) EmailService {
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("service", "mailer")),
	}
}

func (m *smtpMailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var msg strings.Builder
	msg.WriteString("From: " + m.config.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}

func (m *smtpMailer) SendSessionReminder(_ context.Context, p SessionReminderParams) error {
	subject := fmt.Sprintf("Interview reminder: starts in %d minutes", p.MinutesToStart)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour interview session with %s starts in %d minutes (%s at %s UTC).\n\nGood luck!\n",
		p.RecipientName, p.OtherPartyName, p.MinutesToStart, p.Date, p.StartTime,
	)

	if err := m.send(p.To, subject, body); err != nil {
		m.log.Error("Failed to send session reminder",
			zap.Error(err),
			zap.String("to", p.To),
			zap.Int("minutes_to_start", p.MinutesToStart),
		)
		return err
	}

	m.log.Info("Session reminder sent",
		zap.String("to", p.To),
		zap.Int("minutes_to_start", p.MinutesToStart),
	)
	return nil
}

func (m *smtpMailer) SendInterviewerApproval(_ context.Context, to, name string, approved bool) error {
	subject := "Your interviewer application"
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	body := fmt.Sprintf("Hi %s,\n\nYour interviewer application has been %s.\n", name, verdict)

	if err := m.send(to, subject, body); err != nil {
		m.log.Error("Failed to send approval email",
			zap.Error(err),
			zap.String("to", to),
		)
		return err
	}

	return nil
}
