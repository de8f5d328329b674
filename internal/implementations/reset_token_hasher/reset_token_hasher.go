package resettokenhasher

import (
	"crypto/sha256"
	"encoding/hex"
	"pms/internal/core/domain/user"
)

type SHA256 struct{}

func NewSHA256() *SHA256 {
	return &SHA256{}
}

func (h *SHA256) HashToken(token user.PasswordResetToken) user.PasswordResetTokenHash {
	sum := sha256.Sum256([]byte(token))
	return user.PasswordResetTokenHash(hex.EncodeToString(sum[:]))
}
