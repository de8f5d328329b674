package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists                 = errors.New("email already exists")
	ErrUserDoesNotExist                   = errors.New("user does not exist")
	ErrInvalidCredentials                 = errors.New("invalid credentials")
	ErrUserIsNotActive                    = errors.New("user is not active")
	ErrSessionDoesNotExist                = errors.New("session does not exist")
	ErrInvalidOrExpiredPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrNotAllowed                         = errors.New("not allowed for this role")
	ErrSystemAdministrator                = errors.New("system administrator cannot be modified")
	ErrCannotDeleteAdmin                  = errors.New("admin users cannot be deleted")
)
