package updateuser

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

// Input carries only the fields the caller wants to change.
type Input struct {
	ID         user.ID
	Name       c.Optional[string]
	Email      c.Optional[c.Email]
	Role       c.Optional[user.Role]
	Department c.Optional[string]
	IsActive   c.Optional[bool]
	User       user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log                 logging.Logger
	userRepository      user.UserRepository
	systemAdministrator c.Email
}

// New lets admins edit other accounts. The account registered under
// systemAdministrator cannot be edited by anyone; an empty email disables
// that guard.
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
			"User update attempted without admin role.",
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

	update := user.UpdateUserInput{
		ID:                 target.ID,
		DoNameUpdate:       input.Name.IsPresent,
		Name:               input.Name.Value,
		DoEmailUpdate:      input.Email.IsPresent && input.Email.Value != target.Email,
		Email:              input.Email.Value,
		DoRoleUpdate:       input.Role.IsPresent,
		Role:               input.Role.Value,
		DoDepartmentUpdate: input.Department.IsPresent,
		Department:         input.Department.Value,
		DoIsActiveUpdate:   input.IsActive.IsPresent,
		IsActive:           input.IsActive.Value,
	}
	updated, err := s.userRepository.Update(ctx, update)
	if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("targetID", input.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully updated.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("targetID", updated.ID),
	)
	return Result{User: updated}, nil
}
