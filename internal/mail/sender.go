package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"leadagent/internal/config"
	"leadagent/internal/domain"
	agenterrors "leadagent/pkg/errors"
)

// Sender delivers outreach drafts over SMTP. STARTTLS on the submission
// port is tried first; implicit TLS on the SSL port is the fallback because
// some networks block 587.
type Sender struct {
	cfg     config.MailConfig
	enabled bool
	logger  *zap.Logger
}

func NewSender(cfg config.MailConfig, logger *zap.Logger) *Sender {
	s := &Sender{
		cfg:     cfg,
		enabled: cfg.User != "" && cfg.Password != "",
		logger:  logger,
	}

	if s.enabled {
		logger.Info("Email sending enabled",
			zap.String("smtp_host", cfg.SMTPHost),
			zap.Int("smtp_port", cfg.SMTPPort))
	} else {
		logger.Info("Email sending disabled (SMTP credentials not configured)")
	}

	return s
}

// IsEnabled returns true if SMTP credentials are configured.
func (s *Sender) IsEnabled() bool {
	return s.enabled
}

// Send delivers one draft. Returns a validation error when credentials are
// missing so callers can distinguish "not configured" from delivery failure.
func (s *Sender) Send(draft domain.EmailDraft) error {
	if !s.enabled {
		return agenterrors.NewValidationError("SMTP credentials not configured", nil)
	}
	if strings.TrimSpace(draft.Recipient) == "" {
		return agenterrors.NewValidationError("draft has no recipient", nil)
	}

	msg := s.buildMessage(draft)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.SMTPHost)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := s.sendWithStartTLS(addr, auth, draft.Recipient, msg); err == nil {
		s.logger.Info("Email sent", zap.String("to", draft.Recipient))
		return nil
	} else {
		s.logger.Warn("STARTTLS send failed, retrying over SSL",
			zap.Int("port", s.cfg.SMTPPort),
			zap.Error(err))
	}

	sslAddr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPSSLPort)
	if err := s.sendWithTLS(sslAddr, auth, draft.Recipient, msg); err != nil {
		return agenterrors.NewTransportError(
			fmt.Sprintf("failed to send email to %s on both ports", draft.Recipient), err)
	}

	s.logger.Info("Email sent over SSL", zap.String("to", draft.Recipient))
	return nil
}

func (s *Sender) buildMessage(draft domain.EmailDraft) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.User))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", draft.Recipient))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", draft.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(draft.Body)
	msg.WriteString("\r\n")
	return msg.String()
}

// sendWithStartTLS sends over the submission port (587) with STARTTLS.
func (s *Sender) sendWithStartTLS(addr string, auth smtp.Auth, to, msg string) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("SMTP dial failed: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("STARTTLS failed: %w", err)
	}

	return s.transmit(client, auth, to, msg)
}

// sendWithTLS sends over the SSL port (465) with implicit TLS.
func (s *Sender) sendWithTLS(addr string, auth smtp.Auth, to, msg string) error {
	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("TLS dial failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return fmt.Errorf("SMTP client failed: %w", err)
	}
	defer client.Close()

	return s.transmit(client, auth, to, msg)
}

func (s *Sender) transmit(client *smtp.Client, auth smtp.Auth, to, msg string) error {
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}

	if err := client.Mail(s.cfg.User); err != nil {
		return fmt.Errorf("SMTP MAIL failed: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("SMTP RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("SMTP write failed: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("SMTP close failed: %w", err)
	}

	return client.Quit()
}
