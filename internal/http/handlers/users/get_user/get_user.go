package getuser

import (
	"errors"
	"net/http"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	service "pms/internal/core/services/get_user"
	"pms/internal/http/handlers/response"
	"pms/internal/http/handlers/users"
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

	result, err := h.service.Run(r.Context(), service.Input{ID: id})
	if err != nil {
		switch {
		case users.IsAuthError(err):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, users.MsgUserNotFound, http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderSuccess(rw, http.StatusOK, "", response.NewUser(result.User))
}
