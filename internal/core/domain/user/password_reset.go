package user

// PasswordResetToken is the plaintext secret delivered to the user. It only
// lives in memory and in the reset URL.
type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

// PasswordResetTokenHash is what the store keeps in place of the token.
type PasswordResetTokenHash string

type PasswordResetTokenGenerator interface {
	GenerateToken() (PasswordResetToken, error)
}

type PasswordResetTokenHasher interface {
	HashToken(token PasswordResetToken) PasswordResetTokenHash
}
