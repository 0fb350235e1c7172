package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhub/library/internal/entities"
)

func TestUsersController_CreateUser(t *testing.T) {
	t.Run("returns the public projection", func(t *testing.T) {
		s := setupTestServer(t)

		user := s.createUser(t, "ana@x.com")

		assert.NotZero(t, user["id"])
		assert.Equal(t, "Ana", user["name"])
		assert.Equal(t, "ana@x.com", user["email"])
		assert.NotContains(t, user, "password")
	})

	t.Run("rejects a duplicate email without creating a row", func(t *testing.T) {
		s := setupTestServer(t)
		s.createUser(t, "ana@x.com")

		w := s.do(t, "POST", "/users", gin.H{"name": "Other", "email": "ana@x.com", "password": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "email already registered")

		var count int64
		s.db.DB.Model(&entities.User{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		s := setupTestServer(t)

		w := s.do(t, "POST", "/users", gin.H{"name": "Ana", "email": "not-an-email", "password": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("accepts an empty name", func(t *testing.T) {
		s := setupTestServer(t)

		w := s.do(t, "POST", "/users", gin.H{"name": "", "email": "ana@x.com", "password": ""})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("requires every field", func(t *testing.T) {
		s := setupTestServer(t)

		w := s.do(t, "POST", "/users", gin.H{"email": "ana@x.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUsersController_GetUser(t *testing.T) {
	s := setupTestServer(t)
	user := s.createUser(t, "ana@x.com")

	w := s.do(t, "GET", fmt.Sprintf("/users/%v", user["id"]), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@x.com", decode[map[string]any](t, w)["email"])

	w = s.do(t, "GET", "/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())

	w = s.do(t, "GET", "/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersController_Login(t *testing.T) {
	t.Run("succeeds on exact match", func(t *testing.T) {
		s := setupTestServer(t)
		user := s.createUser(t, "ana@x.com")

		w := s.do(t, "POST", "/users/login", gin.H{"email": "ana@x.com", "password": "secret"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user["id"], decode[map[string]any](t, w)["id"])
	})

	t.Run("fails on wrong password or unknown email", func(t *testing.T) {
		s := setupTestServer(t)
		s.createUser(t, "ana@x.com")

		w := s.do(t, "POST", "/users/login", gin.H{"email": "ana@x.com", "password": "Secret"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = s.do(t, "POST", "/users/login", gin.H{"email": "bia@x.com", "password": "secret"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("locks out after repeated failures", func(t *testing.T) {
		s := setupTestServer(t)
		s.createUser(t, "ana@x.com")

		for i := 0; i < 3; i++ {
			w := s.do(t, "POST", "/users/login", gin.H{"email": "ana@x.com", "password": "wrong"})
			require.Equal(t, http.StatusUnauthorized, w.Code)
		}

		w := s.do(t, "POST", "/users/login", gin.H{"email": "ana@x.com", "password": "secret"})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})
}

func TestUsersController_UpdatePassword(t *testing.T) {
	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantStored string
	}{
		{
			name:       "changes the password",
			body:       gin.H{"current_password": "secret", "new_password": "next", "confirm_password": "next"},
			wantStatus: http.StatusNoContent,
			wantStored: "next",
		},
		{
			name:       "wrong current password",
			body:       gin.H{"current_password": "nope", "new_password": "next", "confirm_password": "next"},
			wantStatus: http.StatusBadRequest,
			wantStored: "secret",
		},
		{
			name:       "confirmation mismatch",
			body:       gin.H{"current_password": "secret", "new_password": "next", "confirm_password": "other"},
			wantStatus: http.StatusBadRequest,
			wantStored: "secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t)
			user := s.createUser(t, "ana@x.com")

			w := s.do(t, "PUT", fmt.Sprintf("/users/%v/password", user["id"]), tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var stored entities.User
			require.NoError(t, s.db.DB.First(&stored, idOf(t, user)).Error)
			assert.Equal(t, tt.wantStored, stored.Password)
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		s := setupTestServer(t)

		w := s.do(t, "PUT", "/users/42/password",
			gin.H{"current_password": "a", "new_password": "b", "confirm_password": "b"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUsersController_DeleteUser(t *testing.T) {
	s := setupTestServer(t)
	user := s.createUser(t, "ana@x.com")
	book := s.createBook(t, "Dom Casmurro")
	s.createLoan(t, user["id"], book["id"], "2024-01-01", "2024-01-15")

	w := s.do(t, "DELETE", fmt.Sprintf("/users/%v", user["id"]), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var loans int64
	s.db.DB.Model(&entities.Loan{}).Count(&loans)
	assert.Zero(t, loans)

	w = s.do(t, "DELETE", fmt.Sprintf("/users/%v", user["id"]), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
