package notifier

import (
	"context"
	"errors"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"
)

// Email renders password reset notifications and hands them to a mailer.
type Email struct {
	log       logging.Logger
	renderer  *Renderer
	mailer    notification.Mailer
	transport string
}

func NewEmail(log logging.Logger, renderer *Renderer, mailer notification.Mailer, transport string) *Email {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if renderer == nil {
		panic(e.NewNilArgumentError("renderer"))
	}
	if mailer == nil {
		panic(e.NewNilArgumentError("mailer"))
	}
	return &Email{log: log, renderer: renderer, mailer: mailer, transport: transport}
}

func (n *Email) SendPasswordReset(ctx context.Context, r notification.PasswordReset) error {
	msg, err := n.renderer.PasswordReset(r)
	if err != nil {
		return notification.NewDeliveryError(n.transport, err)
	}
	err = n.mailer.Send(ctx, msg)
	if err == nil {
		n.log.Debug(ctx, "Password reset email handed to transport.", logging.Entry("transport", n.transport))
		return nil
	}
	var deliveryErr *notification.DeliveryError
	if errors.As(err, &deliveryErr) {
		return err
	}
	return notification.NewDeliveryError(n.transport, err)
}

// Console logs the reset link instead of sending it. Meant for local
// development only.
type Console struct {
	log logging.Logger
}

func NewConsole(log logging.Logger) *Console {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Console{log: log}
}

func (n *Console) SendPasswordReset(ctx context.Context, r notification.PasswordReset) error {
	n.log.Info(
		ctx,
		"Password reset link (no mail transport configured).",
		logging.Entry("email", r.User.Email),
		logging.Entry("url", r.URL.String()),
		logging.Entry("expiresAt", r.ExpiresAt),
	)
	return nil
}

// ConsoleMailer is the Mailer counterpart of Console, used by the mail worker
// when no direct transport is configured.
type ConsoleMailer struct {
	log logging.Logger
}

func NewConsoleMailer(log logging.Logger) *ConsoleMailer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg notification.Message) error {
	m.log.Info(
		ctx,
		"Email not sent (no mail transport configured).",
		logging.Entry("to", msg.To),
		logging.Entry("subject", msg.Subject),
		logging.Entry("text", msg.Text),
	)
	return nil
}
