package getuserbysessiontoken

import (
	"context"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/user"
	"pms/internal/core/services/auth"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProfileOfAuthenticatedUser(t *testing.T) {
	users := user.NewFakeUserRepository()
	sessions := user.NewFakeSessionRepository(users)
	u, err := users.Create(context.Background(), user.CreateUserInput{
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       user.RoleAdmin,
		Department: "Ops",
		IsActive:   true,
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, sessions.Create(context.Background(), user.CreateSessionInput{UserID: u.ID, Token: "token"}))

	service := auth.WithAuthentication(sessions, New(logging.NewFakeLogger(), users))
	result, err := service.Run(auth.WithToken(context.Background(), "token"), Input{})

	require.NoError(t, err)
	require.Equal(t, u.ID, result.User.ID)
	require.Equal(t, user.RoleAdmin, result.User.Role)
	require.Equal(t, "Ops", result.User.Department)
}

func TestProfileRequiresSession(t *testing.T) {
	users := user.NewFakeUserRepository()
	sessions := user.NewFakeSessionRepository(users)

	service := auth.WithAuthentication(sessions, New(logging.NewFakeLogger(), users))
	_, err := service.Run(context.Background(), Input{})

	require.ErrorIs(t, err, user.ErrSessionDoesNotExist)
}
