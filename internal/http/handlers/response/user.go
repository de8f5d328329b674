package response

import (
	"pms/internal/core/domain/user"
	"time"
)

type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Name = du.Name
	u.Email = string(du.Email)
	u.Role = string(du.Role)
	u.Department = du.Department
	u.IsActive = du.IsActive
	u.CreatedAt = du.CreatedAt
}

func NewUser(du user.User) User {
	u := User{}
	u.FromDomainUser(du)
	return u
}
