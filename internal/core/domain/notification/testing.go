package notification

import (
	"context"
	"errors"
	"sync"
	"time"
)

type FakeNotifier struct {
	Sent        []PasswordReset
	ReturnError bool
	// Block makes SendPasswordReset wait for the context to be done.
	Block bool
	// Delay makes SendPasswordReset sleep regardless of the context, the
	// way a transport stuck on a socket write does.
	Delay time.Duration
	lock  sync.Mutex
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) SendPasswordReset(ctx context.Context, r PasswordReset) error {
	if n.Block {
		<-ctx.Done()
		return NewDeliveryError("fake", ctx.Err())
	}
	if n.Delay > 0 {
		time.Sleep(n.Delay)
	}
	if n.ReturnError {
		return NewDeliveryError("fake", errors.New("could not send password reset"))
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Sent = append(n.Sent, r)
	return nil
}

func (n *FakeNotifier) SentCount() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.Sent)
}

func (n *FakeNotifier) LastSent() PasswordReset {
	n.lock.Lock()
	defer n.lock.Unlock()
	l := len(n.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return n.Sent[l-1]
}

type FakeMailer struct {
	Sent        []Message
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{}
}

func (m *FakeMailer) Send(ctx context.Context, msg Message) error {
	if m.ReturnError {
		return NewDeliveryError("fake", errors.New("could not send message"))
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}
