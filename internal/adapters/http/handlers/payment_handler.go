package handlers

import (
	"bms-backend/internal/adapters/http/middleware"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles rent payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateIntent opens a payment intent for the discounted rent (Member only)
// @Summary Create payment intent
// @Description Applies an optional coupon and returns the processor client secret
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateIntentInput true "Rent and coupon"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req services.CreateIntentInput
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	out, err := h.paymentService.CreateIntent(c.Context(), middleware.CurrentEmail(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Payment intent created", out)
}

// RecordPayment stores a completed payment
// @Summary Record payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body services.RecordPaymentInput true "Payment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	var req services.RecordPaymentInput
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	payment, err := h.paymentService.RecordPayment(c.Context(), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Payment recorded", fiber.Map{
		"insertedId": payment.ID,
		"payment":    payment,
	})
}

// ListPayments lists the caller's payments (Member only)
// @Summary List my payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.ListPayments(c.Context(), middleware.CurrentEmail(c))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "", fiber.Map{
		"payments": payments,
	})
}
