package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Auth failure codes reported by Authenticate.
const (
	CodeTokenExpired       = "token_expired"
	CodeTokenMalformed     = "token_malformed"
	CodeAdminNotFound      = "admin_not_found"
	CodeInvalidCredentials = "invalid_credentials"
)

// AuthService handles admin signup, login and token authentication
type AuthService struct {
	adminRepo repositories.AdminUserRepository
	tokens    *jwt.AdminTokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, tokens *jwt.AdminTokenService) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateCredentials(creds *models.AdminCredentials) (string, error) {
	if creds == nil {
		return "", apperrors.Validation("All fields required")
	}
	username := normalizeUsername(creds.Username)
	if username == "" || creds.Password == "" {
		return "", apperrors.Validation("All fields required")
	}
	return username, nil
}

// Signup creates an admin account. Usernames are case-insensitive.
func (s *AuthService) Signup(ctx context.Context, creds *models.AdminCredentials) (*models.AdminUser, error) {
	username, err := validateCredentials(creds)
	if err != nil {
		return nil, err
	}

	if _, err := s.adminRepo.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.Conflict("duplicate_admin", "username", "Admin already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Unexpected("Server error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Unexpected("failed to hash password", err)
	}

	admin := &models.AdminUser{Username: username, Password: string(hash)}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if _, ok := repositories.AsDuplicateKey(err); ok {
			return nil, apperrors.Conflict("duplicate_admin", "username", "Admin already exists")
		}
		return nil, apperrors.Unexpected("Server error", err)
	}
	return admin, nil
}

// Login checks the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, creds *models.AdminCredentials) (*models.LoginResponse, error) {
	username, err := validateCredentials(creds)
	if err != nil {
		return nil, err
	}
	if !s.tokens.Configured() {
		return nil, apperrors.Config(apperrors.CodeSecretUnconfigured, "Token signing secret is not configured")
	}

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Auth(CodeInvalidCredentials, "Invalid credentials")
		}
		return nil, apperrors.Unexpected("Server error", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(creds.Password)); err != nil {
		return nil, apperrors.Auth(CodeInvalidCredentials, "Invalid credentials")
	}

	token, err := s.tokens.Generate(admin.ID.Hex(), admin.Username)
	if err != nil {
		return nil, apperrors.Unexpected("failed to generate token", err)
	}
	return &models.LoginResponse{Token: token, Username: admin.Username}, nil
}

// Authenticate resolves a bearer token to the admin it names.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.AdminUser, error) {
	claims, err := s.tokens.Parse(token)
	switch {
	case errors.Is(err, jwt.ErrSecretUnconfigured):
		return nil, apperrors.Config(apperrors.CodeSecretUnconfigured, "Token signing secret is not configured")
	case errors.Is(err, jwt.ErrExpiredToken):
		return nil, apperrors.Auth(CodeTokenExpired, "Token has expired")
	case err != nil:
		return nil, apperrors.Auth(CodeTokenMalformed, "Invalid token")
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, apperrors.Auth(CodeTokenMalformed, "Invalid token")
	}
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Auth(CodeAdminNotFound, "Unauthorized: Admin not found")
		}
		return nil, apperrors.Unexpected("Server error", err)
	}
	return admin, nil
}

// EnsureAdmin creates the admin or resets its password. It reports whether a new account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, creds *models.AdminCredentials) (bool, error) {
	username, err := validateCredentials(creds)
	if err != nil {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, apperrors.Unexpected("failed to hash password", err)
	}

	existing, err := s.adminRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if err := s.adminRepo.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			return false, apperrors.Unexpected("failed to update password", err)
		}
		return false, nil
	case errors.Is(err, repositories.ErrNotFound):
		if err := s.adminRepo.Create(ctx, &models.AdminUser{Username: username, Password: string(hash)}); err != nil {
			return false, apperrors.Unexpected("failed to create admin", err)
		}
		return true, nil
	default:
		return false, apperrors.Unexpected("Server error", err)
	}
}

// ListAdmins returns every admin account
func (s *AuthService) ListAdmins(ctx context.Context) ([]*models.AdminUser, error) {
	return s.adminRepo.FindAll(ctx)
}
