package deleteuser

import (
	"errors"
	"net/http"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	service "pms/internal/core/services/delete_user"
	"pms/internal/http/handlers/response"
	"pms/internal/http/handlers/users"
)

const (
	MsgDeleted             = "User deleted successfully"
	MsgSystemAdministrator = "Cannot delete System Administrator account"
	MsgAdmin               = "Cannot delete admin users"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	id, ok := users.ParseID(r)
	if !ok {
		response.RenderError(rw, users.MsgUserNotFound, http.StatusNotFound)
		return
	}

	_, err := h.service.Run(r.Context(), service.Input{ID: id})
	if err != nil {
		switch {
		case users.IsAuthError(err):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrNotAllowed):
			response.RenderError(rw, users.MsgAccessDenied, http.StatusForbidden)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, users.MsgUserNotFound, http.StatusNotFound)
		case errors.Is(err, user.ErrSystemAdministrator):
			response.RenderError(rw, MsgSystemAdministrator, http.StatusForbidden)
		case errors.Is(err, user.ErrCannotDeleteAdmin):
			response.RenderError(rw, MsgAdmin, http.StatusForbidden)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderSuccess(rw, http.StatusOK, MsgDeleted, nil)
}
