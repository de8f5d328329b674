package notifier

import (
	"context"
	"pms/internal/core/domain/notification"
	"time"

	"github.com/wneessen/go-mail"
)

const smtpTimeout = 15 * time.Second

type SMTP struct {
	config notification.CustomSMTP
	from   string
}

func NewSMTP(config notification.CustomSMTP, from string) *SMTP {
	if config.Host == "" {
		panic("SMTP host must not be empty")
	}
	if from == "" {
		panic("sender address must not be empty")
	}
	return &SMTP{config: config, from: from}
}

func (m *SMTP) Send(ctx context.Context, msg notification.Message) error {
	mailMsg, err := m.buildMessage(msg)
	if err != nil {
		return notification.NewDeliveryError(m.config.Transport(), err)
	}
	client, err := mail.NewClient(m.config.Host, m.clientOptions()...)
	if err != nil {
		return notification.NewDeliveryError(m.config.Transport(), err)
	}
	if err := client.DialAndSendWithContext(ctx, mailMsg); err != nil {
		return notification.NewDeliveryError(m.config.Transport(), err)
	}
	return nil
}

func (m *SMTP) buildMessage(msg notification.Message) (*mail.Msg, error) {
	mailMsg := mail.NewMsg()
	if err := mailMsg.From(m.from); err != nil {
		return nil, err
	}
	if err := mailMsg.To(msg.To); err != nil {
		return nil, err
	}
	mailMsg.Subject(msg.Subject)
	mailMsg.SetBodyString(mail.TypeTextPlain, msg.Text)
	mailMsg.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return mailMsg, nil
}

func (m *SMTP) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.config.Port),
		mail.WithTimeout(smtpTimeout),
	}
	if m.config.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if m.config.User != "" {
		opts = append(
			opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.User),
			mail.WithPassword(m.config.Pass),
		)
	}
	return opts
}
