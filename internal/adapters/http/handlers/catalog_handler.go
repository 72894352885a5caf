package handlers

import (
	"strconv"

	"bms-backend/internal/adapters/http/middleware"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/pagination"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// apartmentPageSize is the catalog's default page size
const apartmentPageSize = 6

// CatalogHandler handles apartments, announcements and coupons
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ============================================================
// Apartments
// ============================================================

// ListApartments lists apartments within a rent range
// @Summary List apartments
// @Tags Apartments
// @Produce json
// @Param page query int false "Page number (zero-based)" default(0)
// @Param size query int false "Items per page" default(6)
// @Param minRent query number false "Minimum rent"
// @Param maxRent query number false "Maximum rent, 0 for none"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /apartments [get]
func (h *CatalogHandler) ListApartments(c *fiber.Ctx) error {
	params := pagination.GetParams(c, apartmentPageSize)
	minRent, _ := strconv.ParseFloat(c.Query("minRent"), 64)
	maxRent, _ := strconv.ParseFloat(c.Query("maxRent"), 64)

	out, err := h.catalogService.ListApartments(c.Context(), minRent, maxRent, params.Offset, params.Size)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"apartments": out.Apartments,
		"count":      out.Count,
		"pagination": pagination.GetMeta(params, out.Count),
	})
}

// GetApartment returns one apartment
// @Summary Get apartment
// @Tags Apartments
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /apartments/{id} [get]
func (h *CatalogHandler) GetApartment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	apt, err := h.catalogService.GetApartment(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"apartment": apt,
	})
}

// CreateApartment adds an apartment (Admin only)
// @Summary Create apartment
// @Tags Apartments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateApartmentInput true "Apartment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /apartments [post]
func (h *CatalogHandler) CreateApartment(c *fiber.Ctx) error {
	var req services.CreateApartmentInput
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	apt, err := h.catalogService.CreateApartment(c.Context(), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Apartment created", fiber.Map{
		"apartment": apt,
	})
}

// ============================================================
// Announcements
// ============================================================

// ListAnnouncements lists announcements
// @Summary List announcements
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Response
// @Router /announcements [get]
func (h *CatalogHandler) ListAnnouncements(c *fiber.Ctx) error {
	items, err := h.catalogService.ListAnnouncements(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"announcements": items,
	})
}

// CreateAnnouncement publishes an announcement (Admin only)
// @Summary Create announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAnnouncementInput true "Announcement"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /announcement [post]
func (h *CatalogHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req services.CreateAnnouncementInput
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	a, err := h.catalogService.CreateAnnouncement(c.Context(), middleware.CurrentEmail(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Announcement published", fiber.Map{
		"insertedId":   a.ID,
		"announcement": a,
	})
}

// ============================================================
// Coupons
// ============================================================

// ListCoupons lists usable coupons
// @Summary List coupons
// @Tags Coupons
// @Produce json
// @Success 200 {object} response.Response
// @Router /coupons [get]
func (h *CatalogHandler) ListCoupons(c *fiber.Ctx) error {
	return h.listCoupons(c, true)
}

// ListAllCoupons lists every coupon including unusable ones (Admin only)
// @Summary List all coupons
// @Tags Coupons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /coupons/all [get]
func (h *CatalogHandler) ListAllCoupons(c *fiber.Ctx) error {
	return h.listCoupons(c, false)
}

func (h *CatalogHandler) listCoupons(c *fiber.Ctx, onlyAvailable bool) error {
	coupons, err := h.catalogService.ListCoupons(c.Context(), onlyAvailable)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"coupons": coupons,
	})
}

// CreateCoupon adds a coupon (Admin only)
// @Summary Create coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCouponInput true "Coupon"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /coupons [post]
func (h *CatalogHandler) CreateCoupon(c *fiber.Ctx) error {
	var req services.CreateCouponInput
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	coupon, err := h.catalogService.CreateCoupon(c.Context(), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Coupon created", fiber.Map{
		"coupon": coupon,
	})
}

// SetCouponAvailabilityRequest represents the availability toggle body
type SetCouponAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// SetCouponAvailability toggles a coupon (Admin only)
// @Summary Set coupon availability
// @Tags Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coupon ID"
// @Param body body SetCouponAvailabilityRequest true "Availability"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /coupons/{id}/availability [patch]
func (h *CatalogHandler) SetCouponAvailability(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	var req SetCouponAvailabilityRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	if err := h.catalogService.SetCouponAvailability(c.Context(), id, *req.Available); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Coupon updated", fiber.Map{
		"id":        id,
		"available": *req.Available,
	})
}

// DeleteCoupon removes a coupon (Admin only)
// @Summary Delete coupon
// @Tags Coupons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coupon ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /coupons/{id} [delete]
func (h *CatalogHandler) DeleteCoupon(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.catalogService.DeleteCoupon(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Coupon deleted", nil)
}
