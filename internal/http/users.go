package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/audit"
	"github.com/readhub/library/internal/dto"
	"github.com/readhub/library/internal/entities"
)

// UserStore defines database operations for user lookup and removal.
type UserStore interface {
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// AccountService covers the credential flows.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password, clientIP string) (*entities.User, error)
	ChangePassword(ctx context.Context, userID uint, current, newPassword, confirm string) error
}

type UsersController struct {
	store    UserStore
	accounts AccountService
	audit    *audit.Service
	logger   *zap.Logger
}

func NewUsersController(store UserStore, accounts AccountService, auditSvc *audit.Service, logger *zap.Logger) *UsersController {
	return &UsersController{store: store, accounts: accounts, audit: auditSvc, logger: logger}
}

// CreateUser registers a member.
// POST /users
func (uc *UsersController) CreateUser(c *gin.Context) {
	var req dto.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	user, err := uc.accounts.Register(c.Request.Context(), dto.Value(req.Name), req.Email, dto.Value(req.Password))
	if err != nil {
		respondError(c, uc.logger, err, "user", "create user")
		return
	}

	respondCreated(c, dto.NewUserPublic(user))
}

// GetUser returns a member by ID.
// GET /users/:id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := uc.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, uc.logger, err, "user", "get user")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserPublic(user))
}

// Login checks credentials and returns the matching member.
// POST /users/login
func (uc *UsersController) Login(c *gin.Context) {
	var req dto.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	user, err := uc.accounts.Login(c.Request.Context(), req.Email, dto.Value(req.Password), c.ClientIP())
	if err != nil {
		respondError(c, uc.logger, err, "user", "login")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserPublic(user))
}

// UpdatePassword replaces a member's password.
// PUT /users/:id/password
func (uc *UsersController) UpdatePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PasswordUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	err := uc.accounts.ChangePassword(c.Request.Context(), id,
		dto.Value(req.CurrentPassword), dto.Value(req.NewPassword), dto.Value(req.ConfirmPassword))
	if err != nil {
		respondError(c, uc.logger, err, "user", "update password")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser removes a member along with their loans, favorites and tickets.
// DELETE /users/:id
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := uc.store.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, uc.logger, err, "user", "delete user")
		return
	}

	uc.audit.LogDelete(nil, "user", id, "Deleted user")
	c.Status(http.StatusNoContent)
}
