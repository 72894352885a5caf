package handlers

import (
	"time"

	"bms-backend/internal/config"
	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles session token endpoints
type AuthHandler struct {
	tokens *services.TokenService
	cookie config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens *services.TokenService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		cookie: cookie,
	}
}

// IssueTokenRequest represents token request body
type IssueTokenRequest struct {
	Email string `json:"email"`
}

// IssueToken handles token issuance
// @Summary Issue access token
// @Description Sign a session token for an email. The token is returned and also set as an HTTP-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body IssueTokenRequest true "Email"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req IssueTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		return response.FromError(c, err)
	}

	h.setAuthCookie(c, token)

	return response.Success(c, "Token issued", fiber.Map{
		"token":      token,
		"expires_in": int(h.tokens.TTL().Seconds()),
	})
}

// Logout handles logout
// @Summary Logout
// @Description Clear the access token cookie. Tokens are stateless and stay valid until they expire.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
		Domain:   h.cookie.Domain,
	})

	return response.Success(c, "Logged out successfully", nil)
}

// setAuthCookie sets the access token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
		Domain:   h.cookie.Domain,
	})
}
