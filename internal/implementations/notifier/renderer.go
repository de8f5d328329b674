package notifier

import (
	"bytes"
	htmltemplate "html/template"
	"pms/internal/core/domain/notification"
	"strconv"
	texttemplate "text/template"
	"time"

	"github.com/golang-module/carbon/v2"
)

const passwordResetSubject = "Password Reset Request"

const passwordResetHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333333;">
  <h2>Password Reset</h2>
  <p>Hello {{.Name}},</p>
  <p>We received a request to reset the password of your account.</p>
  <p><a href="{{.URL}}" style="background: #2563eb; color: #ffffff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">Reset password</a></p>
  <p>Or copy this link into your browser:<br>{{.URL}}</p>
  <p>The link expires in {{.ValidFor}}. If you did not request a reset, ignore this email.</p>
</body>
</html>
`

const passwordResetText = `Hello {{.Name}},

We received a request to reset the password of your account.
Open the link below to choose a new password:

{{.URL}}

The link expires in {{.ValidFor}}. If you did not request a reset, ignore this email.
`

type passwordResetParams struct {
	Name     string
	URL      string
	ValidFor string
}

// Renderer turns notifications into email messages.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
	now  func() time.Time
}

func NewRenderer(now func() time.Time) *Renderer {
	return &Renderer{
		html: htmltemplate.Must(htmltemplate.New("password_reset_html").Parse(passwordResetHTML)),
		text: texttemplate.Must(texttemplate.New("password_reset_text").Parse(passwordResetText)),
		now:  now,
	}
}

func (r *Renderer) PasswordReset(n notification.PasswordReset) (msg notification.Message, err error) {
	params := passwordResetParams{
		Name:     n.User.Name,
		URL:      n.URL.String(),
		ValidFor: validFor(r.now(), n.ExpiresAt),
	}
	if params.Name == "" {
		params.Name = "there"
	}

	var html, text bytes.Buffer
	if err := r.html.Execute(&html, params); err != nil {
		return msg, err
	}
	if err := r.text.Execute(&text, params); err != nil {
		return msg, err
	}
	return notification.Message{
		To:      string(n.User.Email),
		Subject: passwordResetSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// validFor renders the remaining lifetime rounded to whole minutes, or to
// hours when it is an exact number of them.
func validFor(now, expiresAt time.Time) string {
	seconds := carbon.Time2Carbon(now).DiffInSeconds(carbon.Time2Carbon(expiresAt))
	minutes := (seconds + carbon.SecondsPerMinute/2) / carbon.SecondsPerMinute
	switch {
	case minutes <= 1:
		return "1 minute"
	case minutes == carbon.MinutesPerHour:
		return "1 hour"
	case minutes%carbon.MinutesPerHour == 0:
		return strconv.FormatInt(minutes/carbon.MinutesPerHour, 10) + " hours"
	}
	return strconv.FormatInt(minutes, 10) + " minutes"
}
