package handlers

import (
	"bms-backend/internal/adapters/http/middleware"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetAdminDashboard returns admin dashboard data
// @Summary Admin Dashboard
// @Description Building overview: users by role, applications, occupancy and this month's payments (Admin only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Admin dashboard retrieved successfully", data)
}

// GetMemberDashboard returns the caller's dashboard
// @Summary Member Dashboard
// @Description Own applications and payment summary (Member only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/member [get]
func (h *DashboardHandler) GetMemberDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetMemberDashboard(c.Context(), middleware.CurrentEmail(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Member dashboard retrieved successfully", data)
}
