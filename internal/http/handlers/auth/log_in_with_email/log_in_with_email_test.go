package loginwithemail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	ratelimiter "pms/internal/core/domain/rate_limiter"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	service "pms/internal/core/services/log_in_with_email"
	"pms/internal/http/handlers/response"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, svc services.ServiceFunc[service.Input, service.Result], body string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
	New(svc).ServeHTTP(rec, req)

	env := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestSuccess(t *testing.T) {
	svc := services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			return service.Result{
				Token: "session-token",
				User:  user.User{ID: 1, Name: "Alice", Email: input.Email, Role: user.RoleAdmin, IsActive: true},
			}, nil
		},
	)

	status, env := serve(t, svc, `{"email":"alice@example.com","password":"passw0rd"}`)

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, MsgLoggedIn, env["message"])
	data := env["data"].(map[string]interface{})
	require.Equal(t, "session-token", data["token"])
	require.Equal(t, "alice@example.com", data["email"])
	require.Equal(t, "admin", data["role"])
}

func TestMissingFields(t *testing.T) {
	svc := services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			t.Fatal("service must not be called")
			return service.Result{}, nil
		},
	)

	status, env := serve(t, svc, `{"email":"alice@example.com"}`)

	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, MsgMissingFields, env["message"])
}

func TestServiceErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{err: user.ErrInvalidCredentials, status: http.StatusUnauthorized, message: MsgInvalidCredentials},
		{err: user.ErrUserIsNotActive, status: http.StatusUnauthorized, message: MsgInactive},
		{err: ratelimiter.ErrRateLimitExceeded, status: http.StatusTooManyRequests, message: response.MsgRateLimitExceeded},
		{err: errors.New("storage is down"), status: http.StatusInternalServerError, message: response.MsgServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.err.Error(), func(t *testing.T) {
			svc := services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (service.Result, error) {
					return service.Result{}, testcase.err
				},
			)

			status, env := serve(t, svc, `{"email":"alice@example.com","password":"passw0rd"}`)

			require.Equal(t, testcase.status, status)
			require.Equal(t, false, env["success"])
			require.Equal(t, testcase.message, env["message"])
		})
	}
}
