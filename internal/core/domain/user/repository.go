package user

import (
	"context"
	c "pms/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	Role         Role
	Department   string
	IsActive     bool
	CreatedAt    time.Time
}

type UpdateUserInput struct {
	ID                 ID
	DoNameUpdate       bool
	Name               string
	DoEmailUpdate      bool
	Email              c.Email
	DoRoleUpdate       bool
	Role               Role
	DoDepartmentUpdate bool
	Department         string
	DoIsActiveUpdate   bool
	IsActive           bool
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	// List returns all users ordered by ID.
	List(ctx context.Context) ([]User, error)
	// Update returns ErrEmailAlreadyExists when the new email is taken.
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	// Delete removes the user together with its sessions.
	Delete(ctx context.Context, id ID) error
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByPasswordResetTokenHash returns the user whose pending reset
	// matches hash and has not expired at now.
	GetByPasswordResetTokenHash(ctx context.Context, hash PasswordResetTokenHash, now time.Time) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	// SetPasswordResetToken replaces any pending reset of the user.
	SetPasswordResetToken(ctx context.Context, id ID, hash PasswordResetTokenHash, expiresAt time.Time) error
	// ResetPassword sets the new password and clears the pending reset in a
	// single write, provided hash still matches an unexpired reset. Otherwise
	// it returns ErrInvalidOrExpiredPasswordResetToken and changes nothing.
	ResetPassword(
		ctx context.Context,
		hash PasswordResetTokenHash,
		password PasswordHash,
		now time.Time,
	) (User, error)
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
	DeleteAllForUser(ctx context.Context, userID ID) error
	DeleteAllForUserExcept(ctx context.Context, userID ID, keep SessionToken) error
}
