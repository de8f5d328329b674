package updateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "pms/internal/core/domain/common"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	service "pms/internal/core/services/update_user"
	"pms/internal/http/handlers/response"
	"pms/internal/http/handlers/users"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MsgUpdated             = "User updated successfully"
	MsgEmailInUse          = "Email already in use"
	MsgSystemAdministrator = "Cannot update System Administrator account"
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

// Input fields left out of the body, as well as empty name, email and role,
// keep their stored values.
type Input struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"isActive"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	roles := make([]interface{}, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Length(0, 128)),
		validation.Field(&i.Email, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Role, validation.In(roles...)),
		validation.Field(&i.Department, validation.Length(0, 128)),
	)
}

func (i Input) toService(id user.ID) service.Input {
	in := service.Input{ID: id}
	if name := trimmed(i.Name); name != "" {
		in.Name = c.NewOptional(name, true)
	}
	if email := trimmed(i.Email); email != "" {
		in.Email = c.NewOptional(c.NewEmail(email), true)
	}
	if i.Role != nil && *i.Role != "" {
		in.Role = c.NewOptional(user.Role(*i.Role), true)
	}
	if i.Department != nil {
		in.Department = c.NewOptional(*i.Department, true)
	}
	if i.IsActive != nil {
		in.IsActive = c.NewOptional(*i.IsActive, true)
	}
	return in
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	id, ok := users.ParseID(r)
	if !ok {
		response.RenderError(rw, users.MsgUserNotFound, http.StatusNotFound)
		return
	}
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidJSON(rw)
		return
	}
	if input.Email != nil {
		email := trimmed(input.Email)
		input.Email = &email
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	result, err := h.service.Run(r.Context(), input.toService(id))
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
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, MsgEmailInUse, http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderSuccess(rw, http.StatusOK, MsgUpdated, response.NewUser(result.User))
}
