package sendpasswordresettoken

import (
	"context"
	"errors"
	"net/url"
	c "pms/internal/core/domain/common"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/notification"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	"strings"
	"time"
)

const Message = "If your email is registered with us, you will receive a password reset link shortly."

const ResetPasswordPath = "reset-password"

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-token::" + string(i.Email)
}

type Result struct {
	Message string
}

type Settings struct {
	FrontendBaseURL url.URL
	TokenTTL        time.Duration
	NotifierTimeout time.Duration
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	tokenHasher    user.PasswordResetTokenHasher
	notifier       notification.Notifier
	settings       Settings
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	tokenHasher user.PasswordResetTokenHasher,
	notifier notification.Notifier,
	settings Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if settings.TokenTTL <= 0 {
		panic("token TTL must be positive")
	}
	if settings.NotifierTimeout <= 0 {
		panic("notifier timeout must be positive")
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		tokenHasher:    tokenHasher,
		notifier:       notifier,
		settings:       settings,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result = Result{Message: Message}

	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.tokenGenerator.GenerateToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}
	now := s.now()
	expiresAt := now.Add(s.settings.TokenTTL)

	err = s.userRepository.SetPasswordResetToken(ctx, u.ID, s.tokenHasher.HashToken(token), expiresAt)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.notify(ctx, notification.PasswordReset{
		User:      u,
		URL:       s.resetURL(token),
		ExpiresAt: expiresAt,
	})
	return result, nil
}

// notify never fails the request: delivery problems are only logged.
// Notifiers that ignore ctx are abandoned once the timeout expires.
func (s *service) notify(ctx context.Context, n notification.PasswordReset) {
	ctx, cancel := context.WithTimeout(ctx, s.settings.NotifierTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.notifier.SendPasswordReset(ctx, n)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not deliver password reset notification.",
			logging.Entry("userID", n.User.ID),
			logging.Entry("err", err),
		)
		return
	}
	s.log.Info(
		ctx,
		"Password reset notification has been sent.",
		logging.Entry("userID", n.User.ID),
		logging.Entry("expiresAt", n.ExpiresAt),
	)
}

func (s *service) resetURL(token user.PasswordResetToken) url.URL {
	u := s.settings.FrontendBaseURL.JoinPath(ResetPasswordPath)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
		u.RawPath = ""
	}
	q := u.Query()
	q.Set("token", string(token))
	u.RawQuery = q.Encode()
	return *u
}
