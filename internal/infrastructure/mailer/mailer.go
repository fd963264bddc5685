package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"cetime-core/internal/app/config"
)

// Message représente un courriel HTML à envoyer
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// EmailSender abstraction du transport mail (SMTP en production, noop en dev)
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender implémentation EmailSender sur SMTP avec auth PLAIN
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender crée un transport SMTP depuis la configuration mailer
func NewSMTPSender(cfg config.MailerConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send envoie le message. Une seule tentative, pas de file de réessai.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("aucun destinataire")
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("From: %s\r\n", s.from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, msg.To, []byte(body.String())); err != nil {
		return fmt.Errorf("envoi SMTP échoué vers %v: %w", msg.To, err)
	}

	return nil
}

// NoopSender trace les envois sans transport (développement, MAIL_ENABLED=false)
type NoopSender struct{}

func (n *NoopSender) Send(_ context.Context, msg Message) error {
	slog.Info("mail non envoyé (mailer désactivé)",
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
	)
	return nil
}

// NewEmailSender construit le transport selon la configuration
func NewEmailSender(cfg *config.Config) EmailSender {
	mailerConfig := cfg.GetMailer()
	if !mailerConfig.Enabled {
		return &NoopSender{}
	}
	return NewSMTPSender(mailerConfig)
}
