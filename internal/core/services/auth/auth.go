package auth

import (
	"context"
	"errors"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

// WithToken stores the bearer token for WithAuthentication to pick up.
func WithToken(ctx context.Context, token user.SessionToken) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}

// TokenFromContext returns the bearer token stored by WithToken.
func TokenFromContext(ctx context.Context) (user.SessionToken, bool) {
	token, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	return token, ok && token != ""
}

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	sessionRepository user.SessionRepository
	inner             services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	sessionRepository user.SessionRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionRepository: sessionRepository,
		inner:             inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := TokenFromContext(ctx)
	if !ok {
		return result, user.ErrSessionDoesNotExist
	}
	u, err := s.sessionRepository.GetUserByToken(ctx, authToken)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrSessionDoesNotExist
	}
	if err != nil {
		return result, err
	}
	if !u.IsActive {
		return result, user.ErrUserIsNotActive
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
