package services

import (
	"pms/internal/app/deps"
	c "pms/internal/core/domain/common"
	drl "pms/internal/core/domain/rate_limiter"
	"pms/internal/core/services"
	"pms/internal/core/services/auth"
	changepassword "pms/internal/core/services/change_password"
	deleteuser "pms/internal/core/services/delete_user"
	getuser "pms/internal/core/services/get_user"
	getuserbysessiontoken "pms/internal/core/services/get_user_by_session_token"
	listusers "pms/internal/core/services/list_users"
	loginwithemail "pms/internal/core/services/log_in_with_email"
	logout "pms/internal/core/services/log_out"
	ratelimiting "pms/internal/core/services/rate_limiting"
	registeruser "pms/internal/core/services/register_user"
	resetpassword "pms/internal/core/services/reset_password"
	sendpasswordresettoken "pms/internal/core/services/send_password_reset_token"
	updateuser "pms/internal/core/services/update_user"
)

var (
	LogInRateLimit              = drl.Limit{Interval: drl.Hour, Value: 10}
	PasswordResetTokenRateLimit = drl.Limit{Interval: drl.Hour, Value: 3}
)

type Services struct {
	RegisterUser           services.Service[registeruser.Input, registeruser.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	ListUsers              services.Service[listusers.Input, listusers.Result]
	GetUser                services.Service[getuser.Input, getuser.Result]
	UpdateUser             services.Service[updateuser.Input, updateuser.Result]
	DeleteUser             services.Service[deleteuser.Input, deleteuser.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RegisterUser = registeruser.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		LogInRateLimit,
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(deps.Logger, deps.SessionRepository)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		PasswordResetTokenRateLimit,
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetTokenGenerator,
			deps.PasswordResetTokenHasher,
			deps.Notifier,
			sendpasswordresettoken.Settings{
				FrontendBaseURL: deps.Config.FrontendBaseURL,
				TokenTTL:        deps.Config.PasswordResetTokenTTL,
				NotifierTimeout: deps.Config.NotifierTimeout,
			},
			deps.Now,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordResetTokenHasher,
		deps.PasswordHasher,
		deps.Now,
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionRepository,
		changepassword.New(deps.Logger, deps.UnitOfWork, deps.PasswordHasher),
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionRepository,
		getuserbysessiontoken.New(deps.Logger, deps.UserRepository),
	)

	systemAdministrator := c.NewEmail(deps.Config.AdminEmail)
	s.ListUsers = auth.WithAuthentication(
		deps.SessionRepository,
		listusers.New(deps.Logger, deps.UserRepository),
	)
	s.GetUser = auth.WithAuthentication(
		deps.SessionRepository,
		getuser.New(deps.Logger, deps.UserRepository),
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		updateuser.New(deps.Logger, deps.UserRepository, systemAdministrator),
	)
	s.DeleteUser = auth.WithAuthentication(
		deps.SessionRepository,
		deleteuser.New(deps.Logger, deps.UserRepository, systemAdministrator),
	)

	return s
}
