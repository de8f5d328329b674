package resetpassword

import (
	"context"
	"errors"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	uow "pms/internal/core/domain/unit_of_work"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	"time"
)

const Message = "Password reset successfully"

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct {
	Message string
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	tokenHasher    user.PasswordResetTokenHasher
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	tokenHasher user.PasswordResetTokenHasher,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		tokenHasher:    tokenHasher,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Token == "" {
		return result, user.ErrInvalidOrExpiredPasswordResetToken
	}
	hash := s.tokenHasher.HashToken(input.Token)
	now := s.now()

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetByPasswordResetTokenHash(ctx, hash, now)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidOrExpiredPasswordResetToken) {
		s.log.Info(ctx, "Password reset token is invalid or expired.")
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by password reset token.", logging.Entry("err", err))
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	// The token may have been consumed or replaced since the lookup above,
	// so the write itself checks it again.
	u, err = uow.Users().ResetPassword(ctx, hash, newPasswordHash, now)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidOrExpiredPasswordResetToken) {
		s.log.Info(ctx, "Password reset token was consumed concurrently.")
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not reset password.", logging.Entry("err", err))
		return result, err
	}

	err = uow.Sessions().DeleteAllForUser(ctx, u.ID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not revoke sessions.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
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
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", u.ID))
	return Result{Message: Message}, nil
}
