package services

import (
	"context"
	"testing"

	"bms-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.Users())
	ctx := context.Background()

	first, created, err := svc.Register(ctx, &RegisterInput{Email: "Alice@x.com", Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice@x.com", first.Email)
	assert.Equal(t, domain.RoleNone, first.Role)

	again, created, err := svc.Register(ctx, &RegisterInput{Email: "alice@x.com", Name: "Someone else"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Alice", again.Name)
}

func TestUserService_RegisterRequiresEmail(t *testing.T) {
	svc := NewUserService(newMemStore().Users())

	_, _, err := svc.Register(context.Background(), &RegisterInput{})
	assert.ErrorIs(t, err, domain.ErrEmailRequired)
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	store := newMemStore()
	u := store.addUser("bob@x.com", domain.RoleMember)
	svc := NewUserService(store.Users())

	promoted, err := svc.PromoteToAdmin(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	stored, _ := store.userByEmail("bob@x.com")
	assert.Equal(t, domain.RoleAdmin, stored.Role)

	_, err = svc.PromoteToAdmin(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_ListByRole(t *testing.T) {
	store := newMemStore()
	store.addUser("a@x.com", domain.RoleAdmin)
	store.addUser("m1@x.com", domain.RoleMember)
	store.addUser("m2@x.com", domain.RoleMember)
	svc := NewUserService(store.Users())

	members, err := svc.ListByRole(context.Background(), "member")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = svc.ListByRole(context.Background(), "Admin")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserService_ResetMemberRolesKeepsAdmins(t *testing.T) {
	store := newMemStore()
	store.addUser("a@x.com", domain.RoleAdmin)
	store.addUser("m@x.com", domain.RoleMember)
	svc := NewUserService(store.Users())

	n, err := svc.ResetMemberRoles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	admin, _ := store.userByEmail("a@x.com")
	member, _ := store.userByEmail("m@x.com")
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, domain.RoleNone, member.Role)
}

func TestUserService_DeleteUser(t *testing.T) {
	store := newMemStore()
	admin := store.addUser("a@x.com", domain.RoleAdmin)
	other := store.addUser("o@x.com", domain.RoleNone)
	svc := NewUserService(store.Users())
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, "A@x.com"), domain.ErrDeleteSelf)
	require.NoError(t, svc.DeleteUser(ctx, other.ID, "a@x.com"))
	assert.ErrorIs(t, svc.DeleteUser(ctx, other.ID, "a@x.com"), domain.ErrUserNotFound)
}

func TestUserService_HasRole(t *testing.T) {
	store := newMemStore()
	store.addUser("a@x.com", domain.RoleAdmin)
	svc := NewUserService(store.Users())
	ctx := context.Background()

	ok, err := svc.HasRole(ctx, "a@x.com", "a@x.com", domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasRole(ctx, "ghost@x.com", "ghost@x.com", domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.HasRole(ctx, "someone@x.com", "a@x.com", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrSelfOnly)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
