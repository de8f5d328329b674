package registeruser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "pms/internal/core/domain/common"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	registeruser "pms/internal/core/services/register_user"
	"pms/internal/http/handlers/auth"
	"pms/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MsgRegistered    = "User registered successfully"
	MsgMissingFields = "Please provide name, email, and password"
	MsgAlreadyExists = "User with this email already exists"
)

type Handler struct {
	service services.Service[registeruser.Input, registeruser.Result]
}

func New(
	service services.Service[registeruser.Input, registeruser.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
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
		validation.Field(&i.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, auth.PasswordRules()...),
		validation.Field(&i.Role, validation.In(roles...)),
		validation.Field(&i.Department, validation.Length(0, 128)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidJSON(rw)
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		response.RenderError(rw, MsgMissingFields, http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}
	role, _ := user.ParseRole(input.Role)

	result, err := h.service.Run(
		r.Context(),
		registeruser.Input{
			Name:       input.Name,
			Email:      c.NewEmail(input.Email),
			Password:   user.RawPassword(input.Password),
			Role:       role,
			Department: input.Department,
		},
	)
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		response.RenderError(rw, MsgAlreadyExists, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderSuccess(rw, http.StatusCreated, MsgRegistered, response.NewUser(result.User))
}
