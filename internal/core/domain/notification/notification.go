package notification

import (
	"context"
	"fmt"
	"net/url"
	"pms/internal/core/domain/user"
	"time"
)

type PasswordReset struct {
	User      user.User
	URL       url.URL
	ExpiresAt time.Time
}

type Notifier interface {
	SendPasswordReset(ctx context.Context, n PasswordReset) error
}

// Message is a rendered email, ready for any transport.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type DeliveryError struct {
	Transport string
	Err       error
}

func NewDeliveryError(transport string, err error) *DeliveryError {
	return &DeliveryError{Transport: transport, Err: err}
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Transport, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
