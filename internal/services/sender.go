package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/ketewodros41-star/gym/internal/config"
	"github.com/ketewodros41-star/gym/internal/lib/sl"
	"github.com/ketewodros41-star/gym/internal/models"
)

// SenderService отправляет email-уведомления об истёкших членствах через
// SMTP с STARTTLS: персональные письма участникам и сводку администраторам.
// Сообщения приходят из очередей RabbitMQ в формате JSON.
type SenderService struct {
	cfg *config.Config
	log *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(cfg *config.Config, log *slog.Logger) *SenderService {
	return &SenderService{
		cfg: cfg,
		log: log,
	}
}

// SendExpiredMembershipEmail отправляет участнику письмо об истёкшем членстве.
func (s *SenderService) SendExpiredMembershipEmail(body []byte) error {
	var message models.ExpiredMemberInfo
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Ваше членство в клубе истекло"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаше членство в клубе истекло %s.\n\nПожалуйста, продлите его, чтобы сохранить доступ к залу.",
		message.Name, message.MembershipExpiry.Format("2006-01-02"))

	return s.send([]string{message.Email}, subject, bodyText)
}

// SendAdminSummaryEmail отправляет администраторам сводку по истёкшим членствам.
func (s *SenderService) SendAdminSummaryEmail(body []byte) error {
	var summary models.ExpiredSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if len(summary.AdminEmails) == 0 {
		return nil
	}

	lines := make([]string, 0, len(summary.Members))
	for _, m := range summary.Members {
		lines = append(lines, fmt.Sprintf("%s <%s> — истекло %s",
			m.Name, m.Email, m.MembershipExpiry.Format("2006-01-02")))
	}

	subject := fmt.Sprintf("Истёкшие членства: %d", len(summary.Members))
	bodyText := "Членство истекло у следующих участников:\n\n" + strings.Join(lines, "\n")

	return s.send(summary.AdminEmails, subject, bodyText)
}

func (s *SenderService) send(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.cfg.SMTPUser),
		fmt.Sprintf("To: %s", strings.Join(to, ";")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		s.log.Error("failed to dial SMTP server", sl.Err(err))
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		s.log.Error("failed to create SMTP client", sl.Err(err))
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
	}
	ok, _ := client.Extension("STARTTLS")
	if !ok {
		s.log.Error("SMTP server does not support STARTTLS")
		return fmt.Errorf("smtp server does not support STARTTLS")
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		s.log.Error("failed to start TLS", sl.Err(err))
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	if err = client.Auth(auth); err != nil {
		s.log.Error("smtp auth failed", sl.Err(err))
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err = client.Mail(s.cfg.SMTPUser); err != nil {
		s.log.Error("failed to set mail sender", sl.Err(err))
		return fmt.Errorf("failed to set mail sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			s.log.Error("failed to set recipient", sl.Err(err))
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get write closer", sl.Err(err))
		return fmt.Errorf("failed to get write closer: %w", err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close write closer", sl.Err(err))
		return fmt.Errorf("failed to close write closer: %w", err)
	}

	s.log.Info("notification email sent", slog.Int("recipients", len(to)))
	return nil
}
