package handlers

import (
	"bms-backend/internal/adapters/http/middleware"
	"bms-backend/internal/core/domain"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/pagination"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user directory endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register handles user registration
// @Summary Register user
// @Description Add an email to the directory. Registering an existing email is a no-op that returns the stored user.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "User"
// @Success 200 {object} response.Response "already exists"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	user, created, err := h.userService.Register(c.Context(), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	if !created {
		return response.Success(c, "user already exists", fiber.Map{
			"insertedId": nil,
			"user":       user,
		})
	}

	return response.Created(c, "User registered successfully", fiber.Map{
		"insertedId": user.ID,
		"user":       user,
	})
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Description Get a paginated list of all users (Admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (zero-based)" default(0)
// @Param size query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c, 20)

	result, err := h.userService.ListUsers(c.Context(), params.Offset, params.Size)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users":      result.Users,
		"pagination": pagination.GetMeta(params, result.Total),
	})
}

// ListByRole handles listing users holding a role (Admin only)
// @Summary List users by role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role path string true "Role" Enums(member, admin)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/role/{role} [get]
func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	users, err := h.userService.ListByRole(c.Context(), c.Params("role"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": users,
	})
}

// CheckAdmin reports whether the caller is an admin
// @Summary Check admin role
// @Description Callers may only ask about their own email
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c *fiber.Ctx) error {
	isAdmin, err := h.userService.HasRole(c.Context(), middleware.CurrentEmail(c), c.Params("email"), domain.RoleAdmin)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"admin": isAdmin,
	})
}

// PromoteToAdmin grants the admin role (Admin only)
// @Summary Promote user to admin
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/admin/{id} [patch]
func (h *UserHandler) PromoteToAdmin(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	user, err := h.userService.PromoteToAdmin(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "User promoted to admin", fiber.Map{
		"user": user,
	})
}

// ResetRoles removes the member role from every member (Admin only)
// @Summary Reset member roles
// @Description Clears the member role in bulk. Admins keep their role.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/roles/reset [post]
func (h *UserHandler) ResetRoles(c *fiber.Ctx) error {
	n, err := h.userService.ResetMemberRoles(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Member roles reset", fiber.Map{
		"modifiedCount": n,
	})
}

// DeleteUser removes a user (Admin only)
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.userService.DeleteUser(c.Context(), id, middleware.CurrentEmail(c)); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "User deleted successfully", fiber.Map{
		"deletedCount": 1,
	})
}
