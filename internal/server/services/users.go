package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/etfdesk/internal/common"
	"github.com/dmitrijs2005/etfdesk/internal/server/auth"
	"github.com/dmitrijs2005/etfdesk/internal/server/config"
	"github.com/dmitrijs2005/etfdesk/internal/server/models"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/etfdesk/internal/server/repositories/users"
)

// TokenPair is the result of a successful login: a short-lived access token
// and the opaque refresh token recorded server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService implements account lifecycle, login, token rotation, and the
// admin-only user management operations.
type UserService struct {
	users                        users.Repository
	refreshTokens                refreshtokens.Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(userRepo users.Repository, refreshTokenRepo refreshtokens.Repository, cfg *config.Config) *UserService {
	return &UserService{
		users:                        userRepo,
		refreshTokens:                refreshTokenRepo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a regular USER account. Validation failures come back as
// *ValidationError with the message surfaced to the client verbatim.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("Username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, validationError("Password is required")
	}

	taken, err := s.users.UsernameExists(ctx, username, 0)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if taken {
		return nil, validationError("Username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a token pair. A wrong username and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	accessToken, err := auth.GenerateToken(user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken := uuid.NewString()
	if err := s.refreshTokens.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates an access token. The presented token's signature must
// verify, but its expiry is ignored; what gates the rotation is an unexpired
// server-side refresh record for the user. The record itself is rotated so a
// stolen token cannot be replayed forever.
func (s *UserService) Refresh(ctx context.Context, tokenString string) (string, error) {
	claims, err := auth.ParseExpiredToken(tokenString, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	if _, err := s.refreshTokens.FindActiveByUser(ctx, claims.UserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	accessToken, err := auth.GenerateToken(user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	if err := s.refreshTokens.Rotate(ctx, user.ID, uuid.NewString(), s.refreshTokenValidityDuration); err != nil {
		return "", common.ErrorInternal
	}

	return accessToken, nil
}

// Logout invalidates the user's server-side refresh records.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	return s.refreshTokens.DeleteForUser(ctx, userID)
}

// CurrentUser returns the fresh user record for the given id.
func (s *UserService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ParseAccessToken validates a presented bearer token and returns the
// claims-derived user. Used by the REST auth middleware.
func (s *UserService) ParseAccessToken(tokenString string) (*models.User, error) {
	claims, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return &models.User{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if strings.TrimSpace(currentPassword) == "" {
		return validationError("Current password is required")
	}
	if strings.TrimSpace(newPassword) == "" {
		return validationError("New password is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return validationError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ListUsers returns all users, or a username substring match when search is
// non-empty. Admin only; enforced by the REST layer.
func (s *UserService) ListUsers(ctx context.Context, search string) ([]*models.User, error) {
	if strings.TrimSpace(search) != "" {
		return s.users.Search(ctx, search)
	}
	return s.users.FindAll(ctx)
}

// GetUser returns a single user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateUser is the admin variant of Register: the role is caller-supplied.
func (s *UserService) CreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("Username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, validationError("Password is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, validationError("Role is required")
	}

	taken, err := s.users.UsernameExists(ctx, username, 0)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if taken {
		return nil, validationError("Username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return s.users.Create(ctx, &models.User{Username: username, Password: string(hash), Role: role})
}

// UpdateUser changes username and role, and optionally the password when
// newPassword is non-empty.
func (s *UserService) UpdateUser(ctx context.Context, id int64, username, role, newPassword string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("Username is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, validationError("Role is required")
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.UsernameExists(ctx, username, id)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if taken {
		return nil, validationError("Username is already taken")
	}

	existing.Username = username
	existing.Role = role
	updated, err := s.users.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(newPassword) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id, callerID int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	if id == callerID {
		return validationError("Cannot delete your own account")
	}
	return s.users.Delete(ctx, id)
}
