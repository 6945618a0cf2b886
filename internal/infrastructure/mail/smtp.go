package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/Don-calvins/Loan-Automation/internal/config"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

// SMTPMailer delivers messages over SMTP. The encryption mode (STARTTLS
// upgrade before authentication, or implicit TLS) is fixed by
// configuration, never chosen at runtime.
type SMTPMailer struct {
	smtp     config.SMTPConfig
	identity config.MailConfig
}

var _ ports.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer wires transport and identity settings.
func NewSMTPMailer(smtp config.SMTPConfig, identity config.MailConfig) *SMTPMailer {
	return &SMTPMailer{smtp: smtp, identity: identity}
}

// Send composes and delivers one message with its optional attachment.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Message) error {
	out := gomail.NewMsg()

	if err := out.FromFormat(m.identity.FromName, m.identity.FromAddress); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := out.AddToFormat(m.identity.ToName, m.identity.ToAddress); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		out.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}

	if msg.Attachment != nil {
		out.AttachFile(msg.Attachment.Path, gomail.WithFileName(msg.Attachment.Filename))
	}

	client, err := m.newClient()
	if err != nil {
		return fmt.Errorf("build smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send via %s:%d: %w", m.smtp.Host, m.smtp.Port, err)
	}

	return nil
}

func (m *SMTPMailer) newClient() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.smtp.Port),
	}

	if m.smtp.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.smtp.Username),
			gomail.WithPassword(m.smtp.Password),
		)
	}

	switch m.smtp.Encryption {
	case config.EncryptionSSL:
		opts = append(opts, gomail.WithSSL())
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	return gomail.NewClient(m.smtp.Host, opts...)
}
