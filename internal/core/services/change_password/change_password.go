package changepassword

import (
	"context"
	"errors"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	uow "pms/internal/core/domain/unit_of_work"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	"pms/internal/core/services/auth"
)

type Input struct {
	CurrentPassword user.RawPassword
	NewPassword     user.RawPassword
	User            user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

// service keeps the session the change was made from and signs the user
// out everywhere else.
type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !s.passwordHasher.ValidatePassword(input.CurrentPassword, input.User.PasswordHash) {
		s.log.Info(ctx, "Current password did not match.", logging.Entry("userID", input.User.ID))
		return result, user.ErrInvalidCredentials
	}
	currentSession, ok := auth.TokenFromContext(ctx)
	if !ok {
		return result, user.ErrSessionDoesNotExist
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	defer uow.Rollback(ctx)

	if err := uow.Users().SetPassword(ctx, input.User.ID, newPasswordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	err = uow.Sessions().DeleteAllForUserExcept(ctx, input.User.ID, currentSession)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Password has been changed, other sessions revoked.", logging.Entry("userID", input.User.ID))
	return result, nil
}
