package notifier

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"
	"pms/internal/core/domain/user"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func passwordReset(t *testing.T) notification.PasswordReset {
	t.Helper()
	u, err := url.Parse("https://pms.example.com/reset-password?token=abc123")
	require.NoError(t, err)
	return notification.PasswordReset{
		User:      user.User{ID: 1, Name: "Alice <admin>", Email: "alice@example.com"},
		URL:       *u,
		ExpiresAt: NOW.Add(10 * time.Minute),
	}
}

func TestRenderPasswordReset(t *testing.T) {
	renderer := NewRenderer(func() time.Time { return NOW })

	msg, err := renderer.PasswordReset(passwordReset(t))

	require.NoError(t, err)
	require.Equal(t, "alice@example.com", msg.To)
	require.Equal(t, "Password Reset Request", msg.Subject)
	require.Contains(t, msg.Text, "https://pms.example.com/reset-password?token=abc123")
	require.Contains(t, msg.Text, "10 minutes")
	require.Contains(t, msg.HTML, `href="https://pms.example.com/reset-password?token=abc123"`)
	require.Contains(t, msg.HTML, "Alice &lt;admin&gt;")
	require.False(t, strings.Contains(msg.HTML, "<admin>"))
}

func TestValidFor(t *testing.T) {
	cases := []struct {
		left     time.Duration
		expected string
	}{
		{left: 10 * time.Minute, expected: "10 minutes"},
		{left: 10*time.Minute - 700*time.Millisecond, expected: "10 minutes"},
		{left: 20 * time.Second, expected: "1 minute"},
		{left: -time.Minute, expected: "1 minute"},
		{left: time.Hour, expected: "1 hour"},
		{left: 24 * time.Hour, expected: "24 hours"},
		{left: 90 * time.Minute, expected: "90 minutes"},
	}

	for _, testcase := range cases {
		t.Run(testcase.left.String(), func(t *testing.T) {
			require.Equal(t, testcase.expected, validFor(NOW, NOW.Add(testcase.left)))
		})
	}
}

func TestEmailNotifierSendsRenderedMessage(t *testing.T) {
	mailer := notification.NewFakeMailer()
	n := NewEmail(logging.NewFakeLogger(), NewRenderer(func() time.Time { return NOW }), mailer, "fake")

	err := n.SendPasswordReset(context.Background(), passwordReset(t))

	require.NoError(t, err)
	require.Len(t, mailer.Sent, 1)
	require.Equal(t, "alice@example.com", mailer.Sent[0].To)
}

type plainErrorMailer struct{}

func (plainErrorMailer) Send(ctx context.Context, m notification.Message) error {
	return errors.New("connection refused")
}

func TestEmailNotifierWrapsTransportErrors(t *testing.T) {
	n := NewEmail(logging.NewFakeLogger(), NewRenderer(time.Now), plainErrorMailer{}, "smtp:localhost:25")

	err := n.SendPasswordReset(context.Background(), passwordReset(t))

	var deliveryErr *notification.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	require.Equal(t, "smtp:localhost:25", deliveryErr.Transport)
}

func TestConsoleLogsURL(t *testing.T) {
	log := logging.NewFakeLogger()
	n := NewConsole(log)

	err := n.SendPasswordReset(context.Background(), passwordReset(t))

	require.NoError(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.INFO))
	found := false
	for _, entry := range log.Logged[0].Entries {
		if entry.Key == "url" {
			found = true
			require.Equal(t, "https://pms.example.com/reset-password?token=abc123", entry.Value)
		}
	}
	require.True(t, found)
}

func TestSMTPMessage(t *testing.T) {
	m := NewSMTP(notification.CustomSMTP{Host: "smtp.example.com", Port: 587}, "no-reply@example.com")

	msg, err := m.buildMessage(notification.Message{
		To:      "alice@example.com",
		Subject: "Password Reset Request",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})

	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "no-reply@example.com")
	require.Contains(t, buf.String(), "alice@example.com")
	require.Contains(t, buf.String(), "Subject: Password Reset Request")
	require.Contains(t, buf.String(), "text/html")
}

func TestSMTPRejectsInvalidRecipient(t *testing.T) {
	m := NewSMTP(notification.CustomSMTP{Host: "smtp.example.com", Port: 587}, "no-reply@example.com")

	err := m.Send(context.Background(), notification.Message{To: "not an address"})

	var deliveryErr *notification.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	f.input = params
	return &ses.SendEmailOutput{}, f.err
}

func TestSESSendsBothParts(t *testing.T) {
	client := &fakeSES{}
	m := newSES(client, "no-reply@example.com")

	err := m.Send(context.Background(), notification.Message{
		To:      "alice@example.com",
		Subject: "Password Reset Request",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})

	require.NoError(t, err)
	require.Equal(t, "no-reply@example.com", *client.input.Source)
	require.Equal(t, []string{"alice@example.com"}, client.input.Destination.ToAddresses)
	require.Equal(t, "<p>hi</p>", *client.input.Message.Body.Html.Data)
	require.Equal(t, "hi", *client.input.Message.Body.Text.Data)
}

func TestSESError(t *testing.T) {
	m := newSES(&fakeSES{err: errors.New("throttled")}, "no-reply@example.com")

	err := m.Send(context.Background(), notification.Message{To: "alice@example.com"})

	var deliveryErr *notification.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	require.Equal(t, "service:ses", deliveryErr.Transport)
}

func TestNewMailer(t *testing.T) {
	settings := Settings{From: "no-reply@example.com", AWSRegion: "eu-west-1"}
	ctx := context.Background()
	log := logging.NewFakeLogger()

	mailer, err := NewMailer(ctx, log, notification.CustomSMTP{Host: "smtp.example.com", Port: 25}, settings)
	require.NoError(t, err)
	require.IsType(t, &SMTP{}, mailer)

	mailer, err = NewMailer(ctx, log, notification.ProviderService{Name: "gmail", User: "u", Pass: "p"}, settings)
	require.NoError(t, err)
	require.Equal(t, "smtp.gmail.com", mailer.(*SMTP).config.Host)
	require.True(t, mailer.(*SMTP).config.Secure)
	require.Equal(t, "u", mailer.(*SMTP).config.User)

	mailer, err = NewMailer(ctx, log, notification.ProviderService{Name: "ses", User: "key", Pass: "secret"}, settings)
	require.NoError(t, err)
	require.IsType(t, &SES{}, mailer)

	_, err = NewMailer(ctx, log, notification.ProviderService{Name: "carrier-pigeon"}, settings)
	require.Error(t, err)

	mailer, err = NewMailer(ctx, log, notification.DevConsole{}, settings)
	require.NoError(t, err)
	require.IsType(t, &ConsoleMailer{}, mailer)

	_, err = NewMailer(ctx, log, notification.Queue{URL: "amqp://localhost/", Queue: "mail"}, settings)
	require.Error(t, err)
}

func TestConsoleMailerLogsMessage(t *testing.T) {
	log := logging.NewFakeLogger()
	msg := notification.Message{To: "alice@example.com", Subject: "Password Reset Request", Text: "link"}

	err := NewConsoleMailer(log).Send(context.Background(), msg)

	require.NoError(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.INFO))
}
