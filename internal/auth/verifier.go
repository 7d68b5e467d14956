package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credential modes accepted by NewVerifier.
const (
	ModePlain  = "plain"
	ModeBcrypt = "bcrypt"
)

// CredentialVerifier decides whether a supplied password matches the stored one.
type CredentialVerifier interface {
	Verify(stored, supplied string) bool
}

// PlainVerifier compares passwords for exact equality.
type PlainVerifier struct{}

func (PlainVerifier) Verify(stored, supplied string) bool {
	return stored == supplied
}

// BcryptVerifier treats the stored value as a bcrypt hash.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewVerifier returns the verifier for mode. An empty mode means plain.
func NewVerifier(mode string) (CredentialVerifier, error) {
	switch mode {
	case "", ModePlain:
		return PlainVerifier{}, nil
	case ModeBcrypt:
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown credential mode %q", mode)
	}
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
