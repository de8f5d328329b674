package deleteuser

import (
	"context"
	"errors"
	c "pms/internal/core/domain/common"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	"pms/internal/core/services/auth"
)

type Input struct {
	ID   user.ID
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log                 logging.Logger
	userRepository      user.UserRepository
	systemAdministrator c.Email
}

// New lets admins delete non-admin accounts. Sessions of the deleted user go
// with it.
func New(
	log logging.Logger,
	userRepository user.UserRepository,
	systemAdministrator c.Email,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:                 log,
		userRepository:      userRepository,
		systemAdministrator: systemAdministrator,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !input.User.HasRole(user.RoleAdmin) {
		s.log.Info(
			ctx,
			"User deletion attempted without admin role.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("targetID", input.ID),
		)
		return result, user.ErrNotAllowed
	}

	target, err := s.userRepository.GetByID(ctx, input.ID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("targetID", input.ID))
		return result, err
	}
	if s.systemAdministrator != "" && target.Email == s.systemAdministrator {
		return result, user.ErrSystemAdministrator
	}
	if target.HasRole(user.RoleAdmin) {
		return result, user.ErrCannotDeleteAdmin
	}

	err = s.userRepository.Delete(ctx, target.ID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("targetID", target.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"User has been deleted.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("targetID", target.ID),
	)
	return result, nil
}
