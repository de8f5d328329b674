package changepassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "pms/internal/core/domain/errors"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	changepassword "pms/internal/core/services/change_password"
	"pms/internal/http/handlers/auth"
	"pms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgChanged           = "Password changed successfully"
	MsgIncorrectPassword = "Current password is incorrect"
)

type Handler struct {
	service services.Service[changepassword.Input, changepassword.Result]
}

func New(
	service services.Service[changepassword.Input, changepassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.CurrentPassword, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.NewPassword, auth.PasswordRules()...),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidJSON(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		changepassword.Input{
			CurrentPassword: user.RawPassword(input.CurrentPassword),
			NewPassword:     user.RawPassword(input.NewPassword),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist),
			errors.Is(err, user.ErrUserDoesNotExist),
			errors.Is(err, user.ErrUserIsNotActive):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrInvalidCredentials):
			response.RenderError(rw, MsgIncorrectPassword, http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderSuccess(rw, http.StatusOK, MsgChanged, nil)
}
