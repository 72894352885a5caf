package services

import (
	"context"
	"errors"
	"time"

	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"
	"bms-backend/internal/pkg/jwt"
)

// ============================================================
// Token service
// ============================================================

// TokenService issues and verifies stateless session tokens
type TokenService struct {
	secret string
	ttl    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
	}
}

// Issue signs a token carrying the email claim
func (s *TokenService) Issue(email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", domain.ErrEmailRequired
	}
	return jwt.GenerateAccessToken(email, s.secret, s.ttl)
}

// Verify checks signature and expiry and returns the email claim
func (s *TokenService) Verify(token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenMissing
	}

	claims, err := jwt.ValidateAccessToken(token, s.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}

	return claims.Email, nil
}

// TTL returns the lifetime of issued tokens
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// ============================================================
// Access control
// ============================================================

// AccessService gates protected operations: token first, then an exact
// role match looked up in the user directory
type AccessService struct {
	tokens   *TokenService
	userRepo repositories.UserRepository
}

// NewAccessService creates a new access service
func NewAccessService(tokens *TokenService, userRepo repositories.UserRepository) *AccessService {
	return &AccessService{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// RequireAuthenticated returns the caller's email for a valid token
func (s *AccessService) RequireAuthenticated(token string) (string, error) {
	return s.tokens.Verify(token)
}

// RequireRole fails with ErrInsufficientRole unless the user exists and
// holds exactly role. Admin does not satisfy member and vice versa.
func (s *AccessService) RequireRole(ctx context.Context, email string, role domain.Role) error {
	if role == domain.RoleNone {
		return domain.ErrInvalidRole
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrInsufficientRole
		}
		return err
	}

	if user.Role != role {
		return domain.ErrInsufficientRole
	}
	return nil
}
