package entities

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken       = errors.New("email already registered")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidCredentials covers both an unknown email and a wrong password on login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// IsConflict reports whether err is one of the request-level conflicts
// (duplicate email, wrong current password, confirmation mismatch).
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrWrongPassword) ||
		errors.Is(err, ErrPasswordMismatch)
}
