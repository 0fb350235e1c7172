package auth

import (
	"strings"
	"testing"

	"github.com/readhub/library/internal/config"
)

func TestNewPasswordHasher(t *testing.T) {
	if _, ok := NewPasswordHasher(config.Auth{}).(PlainHasher); !ok {
		t.Error("empty storage mode should default to plain")
	}
	if _, ok := NewPasswordHasher(config.Auth{PasswordStorage: config.PasswordStorageBcrypt, BcryptCost: 4}).(BcryptHasher); !ok {
		t.Error("bcrypt storage mode should use BcryptHasher")
	}
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}

	stored, err := h.Hash("p1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if stored != "p1" {
		t.Errorf("Hash() = %q, want the password itself", stored)
	}
	if !h.Matches("p1", stored) {
		t.Error("Matches() should accept the exact password")
	}
	if h.Matches("P1", stored) || h.Matches("p1 ", stored) || h.Matches("", stored) {
		t.Error("Matches() must require exact equality")
	}
}

func TestBcryptHasher(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "short password", password: "p1", wantErr: nil},
		{name: "empty password", password: "", wantErr: nil},
		{name: "password at maximum length", password: strings.Repeat("a", 72), wantErr: nil},
		{name: "password too long", password: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
	}

	h := BcryptHasher{Cost: 4}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			if err != tt.wantErr {
				t.Fatalf("Hash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if hash == tt.password && tt.password != "" {
				t.Error("Hash() stored the password verbatim")
			}
			if !h.Matches(tt.password, hash) {
				t.Error("Matches() rejected the original password")
			}
			if h.Matches(tt.password+"x", hash) {
				t.Error("Matches() accepted a different password")
			}
		})
	}
}

func TestBcryptHasher_RejectsSuffixBeyondLimit(t *testing.T) {
	h := BcryptHasher{Cost: 4}
	password := strings.Repeat("a", MaxBcryptPasswordLength)
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h.Matches(password+"x", hash) {
		t.Error("Matches() accepted a password that only shares the first 72 bytes")
	}
	if !h.Matches(password, hash) {
		t.Error("Matches() rejected the original password")
	}
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	h := BcryptHasher{Cost: 99}
	hash, err := h.Hash("p1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !h.Matches("p1", hash) {
		t.Error("Matches() rejected the original password")
	}
}
