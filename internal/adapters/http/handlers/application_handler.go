package handlers

import (
	"bms-backend/internal/adapters/http/middleware"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles apartment application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
	}
}

// Submit handles a new application
// @Summary Apply for an apartment
// @Description apartmentId must name a catalog apartment. An applicant may hold one pending application, and an apartment may appear in one stored application
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body services.SubmitInput true "Application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /apply [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req services.SubmitInput
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	app, err := h.appService.Submit(c.Context(), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Application submitted", fiber.Map{
		"insertedId":  app.ID,
		"application": app,
	})
}

// ListPending lists applications awaiting a decision
// @Summary List pending applications
// @Tags Applications
// @Produce json
// @Success 200 {object} response.Response
// @Router /apply [get]
func (h *ApplicationHandler) ListPending(c *fiber.Ctx) error {
	apps, err := h.appService.ListPending(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"applications": apps,
	})
}

// ListAll lists every stored application (Admin only)
// @Summary List all applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /apply/all [get]
func (h *ApplicationHandler) ListAll(c *fiber.Ctx) error {
	apps, err := h.appService.ListAll(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"applications": apps,
	})
}

// ListMine lists the caller's applications
// @Summary List my applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /apply/mine [get]
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	apps, err := h.appService.ListByEmail(c.Context(), middleware.CurrentEmail(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"applications": apps,
	})
}

// Get returns one application (Admin only)
// @Summary Get application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /apply/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	app, err := h.appService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"application": app,
	})
}

// Accept accepts a pending application and makes the applicant a member (Admin only)
// @Summary Accept application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /apply/{id}/accept [patch]
func (h *ApplicationHandler) Accept(c *fiber.Ctx) error {
	app, err := h.appService.Accept(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Application accepted", fiber.Map{
		"application": app,
	})
}

// Reject rejects a pending application, removing it (Admin only)
// @Summary Reject application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /apply/{id}/reject [patch]
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	app, err := h.appService.Reject(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Application rejected", fiber.Map{
		"application": app,
		"deleted":     true,
	})
}
