package listusers

import (
	"net/http"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/services"
	service "pms/internal/core/services/list_users"
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
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		if users.IsAuthError(err) {
			response.RenderUnauthorized(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}

	data := make([]response.User, 0, len(result.Users))
	for _, u := range result.Users {
		data = append(data, response.NewUser(u))
	}
	response.RenderList(rw, len(data), data)
}
