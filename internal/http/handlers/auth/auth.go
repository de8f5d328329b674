package auth

import (
	"net/http"
	"pms/internal/core/domain/user"
	"pms/internal/core/services/auth"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024

	PASSWORD_MIN_LEN = 8
	PASSWORD_MAX_LEN = 256
)

var (
	reLetter = regexp.MustCompile(`\pL`)
	reDigit  = regexp.MustCompile(`\pN`)
)

// PasswordRules is the policy every newly chosen password must pass.
func PasswordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(PASSWORD_MIN_LEN, PASSWORD_MAX_LEN),
		validation.Match(reLetter).Error("must contain at least one letter"),
		validation.Match(reDigit).Error("must contain at least one digit"),
	}
}

func ParseToken(r *http.Request) (token user.SessionToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
	if len(parts) != 2 || parts[1] == "" {
		return token, false
	}
	if len(parts[1]) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(parts[1]), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
