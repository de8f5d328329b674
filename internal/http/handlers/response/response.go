package response

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgServerError       = "Server error"
	MsgNotAuthorized     = "Not authorized"
	MsgRateLimitExceeded = "Too many requests, please try again later"
	MsgRouteNotFound     = "Route not found"
	MsgInvalidJSON       = "Invalid request data"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Count   *int              `json:"count,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func RenderSuccess(rw http.ResponseWriter, status int, msg string, data interface{}) {
	Render(rw, Envelope{Success: true, Message: msg, Data: data}, status)
}

// RenderList renders a collection together with its size.
func RenderList(rw http.ResponseWriter, count int, data interface{}) {
	Render(rw, Envelope{Success: true, Count: &count, Data: data}, http.StatusOK)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, Envelope{Success: false, Message: msg}, status)
}

// RenderValidationError lists field errors produced by ozzo-validation.
func RenderValidationError(rw http.ResponseWriter, err error) {
	env := Envelope{Success: false, Message: err.Error()}
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		env.Errors = make(map[string]string, len(fieldErrors))
		for field, fieldErr := range fieldErrors {
			env.Errors[field] = fieldErr.Error()
		}
	}
	Render(rw, env, http.StatusBadRequest)
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, MsgNotAuthorized, http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, MsgServerError, http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, MsgRateLimitExceeded, http.StatusTooManyRequests)
}

func RenderInvalidJSON(rw http.ResponseWriter) {
	RenderError(rw, MsgInvalidJSON, http.StatusBadRequest)
}

func RenderNotFound(rw http.ResponseWriter) {
	RenderError(rw, MsgRouteNotFound, http.StatusNotFound)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
