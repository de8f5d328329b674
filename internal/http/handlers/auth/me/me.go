package me

import (
	"errors"
	"net/http"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	service "pms/internal/core/services/get_user_by_session_token"
	"pms/internal/http/handlers/response"
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
	result, err := h.service.Run(
		r.Context(),
		service.Input{},
	)
	if err != nil {
		if isAuthError(err) {
			response.RenderUnauthorized(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}

	response.RenderSuccess(rw, http.StatusOK, "", response.NewUser(result.User))
}

func isAuthError(err error) bool {
	return errors.Is(err, user.ErrSessionDoesNotExist) ||
		errors.Is(err, user.ErrUserDoesNotExist) ||
		errors.Is(err, user.ErrUserIsNotActive)
}
