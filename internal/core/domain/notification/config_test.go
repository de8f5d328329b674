package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveService(t *testing.T) {
	smtp, ok := ResolveService(ProviderService{Name: "gmail", User: "u", Pass: "p"})
	require.True(t, ok)
	require.Equal(t, CustomSMTP{Host: "smtp.gmail.com", Port: 465, Secure: true, User: "u", Pass: "p"}, smtp)

	_, ok = ResolveService(ProviderService{Name: "ses"})
	require.False(t, ok)
	require.True(t, IsKnownService("ses"))
	require.False(t, IsKnownService("pigeon"))
}

func TestDeliveryErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	var err error = NewDeliveryError("smtp", cause)

	var deliveryErr *DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	require.Equal(t, "smtp", deliveryErr.Transport)
	require.ErrorIs(t, err, cause)
}
