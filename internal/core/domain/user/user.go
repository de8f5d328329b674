package user

import (
	c "pms/internal/core/domain/common"
	e "pms/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

func (t SessionToken) String() string {
	return "***"
}

type Role string

const (
	RoleAdmin     = Role("admin")
	RoleManager   = Role("manager")
	RoleDeveloper = Role("developer")
)

var Roles = []Role{RoleAdmin, RoleManager, RoleDeveloper}

func ParseRole(raw string) (Role, bool) {
	if raw == "" {
		return RoleDeveloper, true
	}
	for _, r := range Roles {
		if string(r) == raw {
			return r, true
		}
	}
	return Role(""), false
}

type User struct {
	ID                  ID
	Name                string
	Email               c.Email
	PasswordHash        PasswordHash
	Role                Role
	Department          string
	IsActive            bool
	CreatedAt           time.Time
	ResetTokenHash      c.Optional[PasswordResetTokenHash]
	ResetTokenExpiresAt c.Optional[time.Time]
}

func (u User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError("email is not set for user %d", u.ID)
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError("password hash is not set for user %d", u.ID)
	}
	if u.ResetTokenHash.IsPresent != u.ResetTokenExpiresAt.IsPresent {
		return e.NewInvalidStateError(
			"reset token hash and expiry must be set together for user %d",
			u.ID,
		)
	}
	return nil
}

func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u User) HasPendingReset() bool {
	return u.ResetTokenHash.IsPresent && u.ResetTokenExpiresAt.IsPresent
}

// HasValidResetToken reports whether a pending reset can still be
// confirmed at the given moment.
func (u User) HasValidResetToken(now time.Time) bool {
	return u.HasPendingReset() && now.Before(u.ResetTokenExpiresAt.Value)
}
