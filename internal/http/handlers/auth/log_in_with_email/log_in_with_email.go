package loginwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "pms/internal/core/domain/common"
	e "pms/internal/core/domain/errors"
	ratelimiter "pms/internal/core/domain/rate_limiter"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	loginwithemail "pms/internal/core/services/log_in_with_email"
	"pms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgLoggedIn           = "Login successful"
	MsgMissingFields      = "Please provide email and password"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInactive           = "Account is inactive. Please contact administrator."
)

type Handler struct {
	service services.Service[loginwithemail.Input, loginwithemail.Result]
}

func New(
	service services.Service[loginwithemail.Input, loginwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
	)
}

// Result is the profile with the new session token next to it.
type Result struct {
	response.User
	Token string `json:"token"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidJSON(rw)
		return
	}
	if input.Email == "" || input.Password == "" {
		response.RenderError(rw, MsgMissingFields, http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		loginwithemail.Input{
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.RenderError(rw, MsgInvalidCredentials, http.StatusUnauthorized)
		case errors.Is(err, user.ErrUserIsNotActive):
			response.RenderError(rw, MsgInactive, http.StatusUnauthorized)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderSuccess(rw, http.StatusOK, MsgLoggedIn, Result{
		User:  response.NewUser(result.User),
		Token: string(result.Token),
	})
}
