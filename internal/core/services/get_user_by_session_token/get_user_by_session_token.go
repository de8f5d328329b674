package getuserbysessiontoken

import (
	"context"
	"errors"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	"pms/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

// New returns the profile of the authenticated user re-read from storage.
// It is meant to be wrapped with auth.WithAuthentication.
func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.User.ID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	return Result{User: u}, nil
}
