package logout

import (
	"errors"
	"net/http"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	logout "pms/internal/core/services/log_out"
	"pms/internal/http/handlers/auth"
	"pms/internal/http/handlers/response"
)

const MsgLoggedOut = "Logged out successfully"

type Handler struct {
	service services.Service[logout.Input, logout.Result]
}

func New(
	service services.Service[logout.Input, logout.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}
	_, err := h.service.Run(
		r.Context(),
		logout.Input{Token: token},
	)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	response.RenderSuccess(rw, http.StatusOK, MsgLoggedOut, nil)
}
