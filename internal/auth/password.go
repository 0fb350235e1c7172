package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/readhub/library/internal/config"
)

// MaxBcryptPasswordLength is bcrypt's input limit in bytes.
const MaxBcryptPasswordLength = 72

var ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 bytes")

// PasswordHasher turns a password into its stored form and checks a candidate against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(password, stored string) bool
}

// NewPasswordHasher picks the storage mode from configuration. Unknown modes fall back to plain.
func NewPasswordHasher(cfg config.Auth) PasswordHasher {
	if cfg.PasswordStorage == config.PasswordStorageBcrypt {
		return BcryptHasher{Cost: cfg.BcryptCost}
	}
	return PlainHasher{}
}

// PlainHasher stores passwords verbatim. Insecure.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Matches(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// BcryptHasher stores bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

// Hash creates a bcrypt hash of the password.
func (h BcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxBcryptPasswordLength {
		return "", ErrPasswordTooLong
	}

	cost := h.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Matches compares a password with its hash. bcrypt only reads the first 72
// bytes, so longer candidates never match.
func (h BcryptHasher) Matches(password, stored string) bool {
	if len(password) > MaxBcryptPasswordLength {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
