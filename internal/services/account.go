// Package services holds the flows that combine several repositories or
// collaborators. Single-table CRUD goes straight from handler to repository.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/readhub/library/internal/audit"
	"github.com/readhub/library/internal/auth"
	"github.com/readhub/library/internal/entities"
)

// UserRepository is the subset of the users repository the account flows need.
type UserRepository interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
}

// AccountService implements registration, login and password change.
type AccountService struct {
	users   UserRepository
	hasher  auth.PasswordHasher
	limiter auth.LoginLimiter
	audit   *audit.Service
	logger  *zap.Logger
}

func NewAccountService(users UserRepository, hasher auth.PasswordHasher, limiter auth.LoginLimiter, auditSvc *audit.Service, logger *zap.Logger) *AccountService {
	if limiter == nil {
		limiter = auth.NoopLimiter{}
	}
	return &AccountService{
		users:   users,
		hasher:  hasher,
		limiter: limiter,
		audit:   auditSvc,
		logger:  logger.Named("accounts"),
	}
}

// Register creates a user. Returns entities.ErrEmailTaken if the email is in use.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{Name: name, Email: email, Password: stored}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.audit.LogCreate(&user.ID, "user", user.ID, "Registered "+user.Email, nil)
	return user, nil
}

// Login returns the user whose email and password match exactly.
// Fails with entities.ErrInvalidCredentials, or *LockedOutError while throttled.
func (s *AccountService) Login(ctx context.Context, email, password, clientIP string) (*entities.User, error) {
	allowed, retryAfter, err := s.limiter.Allow(ctx, clientIP, email)
	if err != nil {
		// throttling is best effort; a limiter outage must not block logins
		s.logger.Warn("login limiter unavailable", zap.Error(err))
	} else if !allowed {
		return nil, &LockedOutError{RetryAfter: retryAfter}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		return nil, err
	}
	if user == nil || !s.hasher.Matches(password, user.Password) {
		s.recordFailure(ctx, user, email, clientIP)
		return nil, entities.ErrInvalidCredentials
	}

	if err := s.limiter.RecordSuccess(ctx, clientIP, email); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}
	s.audit.LogAuth(&user.ID, "login", email, clientIP, nil)
	return user, nil
}

func (s *AccountService) recordFailure(ctx context.Context, user *entities.User, email, clientIP string) {
	var userID *uint
	if user != nil {
		userID = &user.ID
	}
	s.audit.LogAuth(userID, "login_failed", email, clientIP, entities.ErrInvalidCredentials)

	locked, lockout, err := s.limiter.RecordFailure(ctx, clientIP, email)
	if err != nil {
		s.logger.Warn("failed to record login failure", zap.Error(err))
		return
	}
	if locked {
		s.logger.Warn("login locked out",
			zap.String("client_ip", clientIP),
			zap.Duration("lockout", lockout))
	}
}

// ChangePassword replaces the stored password. Checks run in order: the user
// must exist, current must match, then new must equal confirm. Any failure
// leaves the stored password untouched.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, current, newPassword, confirm string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Matches(current, user.Password) {
		return entities.ErrWrongPassword
	}
	if newPassword != confirm {
		return entities.ErrPasswordMismatch
	}

	stored, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, stored); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.audit.LogUpdate(&userID, "user", userID, "user_password_change", "Password changed", nil)
	return nil
}
