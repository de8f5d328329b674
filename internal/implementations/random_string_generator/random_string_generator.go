package randomstringgenerator

import (
	"crypto/rand"
	"encoding/hex"
	"pms/internal/core/domain/user"
)

const (
	SessionTokenBytes       = 32
	PasswordResetTokenBytes = 32
)

// Generator produces hex encoded tokens from the operating system CSPRNG.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateSessionToken() (user.SessionToken, error) {
	s, err := randomHex(SessionTokenBytes)
	return user.SessionToken(s), err
}

// GenerateToken returns 64 hex characters carrying 256 bits of entropy.
func (g *Generator) GenerateToken() (user.PasswordResetToken, error) {
	s, err := randomHex(PasswordResetTokenBytes)
	return user.PasswordResetToken(s), err
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
