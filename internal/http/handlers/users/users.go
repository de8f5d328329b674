package users

import (
	"errors"
	"net/http"
	"pms/internal/core/domain/user"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	MsgUserNotFound = "User not found"
	MsgAccessDenied = "Access denied"
)

// ParseID reads the {id} route parameter. Anything but a positive integer is
// reported as not ok.
func ParseID(r *http.Request) (user.ID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return user.ID(id), true
}

func IsAuthError(err error) bool {
	return errors.Is(err, user.ErrSessionDoesNotExist) ||
		errors.Is(err, user.ErrUserIsNotActive)
}
