package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-access-tokens"

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue("  Alice@Example.com ")
	require.NoError(t, err)

	email, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestTokenService_IssueRequiresEmail(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	_, err := svc.Issue("   ")
	assert.ErrorIs(t, err, domain.ErrEmailRequired)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTokenService_Verify(t *testing.T) {
	valid := NewTokenService(testSecret, time.Hour)
	token, err := valid.Issue("a@x.com")
	require.NoError(t, err)

	expiredToken, err := NewTokenService(testSecret, -time.Minute).Issue("a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		svc     *TokenService
		token   string
		wantErr error
	}{
		{name: "missing", svc: valid, token: "", wantErr: domain.ErrTokenMissing},
		{name: "malformed", svc: valid, token: "not-a-token", wantErr: domain.ErrTokenInvalid},
		{name: "expired", svc: valid, token: expiredToken, wantErr: domain.ErrTokenExpired},
		{name: "wrong secret", svc: NewTokenService("another-secret", time.Hour), token: token, wantErr: domain.ErrTokenInvalid},
		{name: "tampered", svc: valid, token: token + "x", wantErr: domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestAccessService_RequireRole(t *testing.T) {
	store := newMemStore()
	store.addUser("admin@x.com", domain.RoleAdmin)
	store.addUser("member@x.com", domain.RoleMember)
	store.addUser("plain@x.com", domain.RoleNone)

	access := NewAccessService(NewTokenService(testSecret, time.Hour), store.Users())
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		role    domain.Role
		wantErr error
	}{
		{name: "admin has admin", email: "admin@x.com", role: domain.RoleAdmin},
		{name: "member has member", email: "member@x.com", role: domain.RoleMember},
		{name: "admin is not member", email: "admin@x.com", role: domain.RoleMember, wantErr: domain.ErrInsufficientRole},
		{name: "member is not admin", email: "member@x.com", role: domain.RoleAdmin, wantErr: domain.ErrInsufficientRole},
		{name: "no role", email: "plain@x.com", role: domain.RoleMember, wantErr: domain.ErrInsufficientRole},
		{name: "unknown user", email: "ghost@x.com", role: domain.RoleAdmin, wantErr: domain.ErrInsufficientRole},
		{name: "empty role requested", email: "admin@x.com", role: domain.RoleNone, wantErr: domain.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := access.RequireRole(ctx, tt.email, tt.role)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccessService_RequireRoleStoreError(t *testing.T) {
	store := newMemStore()
	access := NewAccessService(NewTokenService(testSecret, time.Hour), &failingUsers{memUsers{store}, errors.New("connection refused")})

	err := access.RequireRole(context.Background(), "a@x.com", domain.RoleAdmin)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

func TestAccessService_RoleReflectsDirectoryNotToken(t *testing.T) {
	store := newMemStore()
	u := store.addUser("bob@x.com", domain.RoleNone)
	tokens := NewTokenService(testSecret, time.Hour)
	access := NewAccessService(tokens, store.Users())
	ctx := context.Background()

	token, err := tokens.Issue("bob@x.com")
	require.NoError(t, err)

	email, err := access.RequireAuthenticated(token)
	require.NoError(t, err)
	assert.ErrorIs(t, access.RequireRole(ctx, email, domain.RoleAdmin), domain.ErrInsufficientRole)

	// same token, new role
	require.NoError(t, store.Users().UpdateRole(ctx, u.ID, domain.RoleAdmin))
	assert.NoError(t, access.RequireRole(ctx, email, domain.RoleAdmin))
}

type failingUsers struct {
	memUsers
	err error
}

func (f *failingUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}
