package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"bms-backend/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "validation", err: domain.ErrEmailRequired, status: 400, message: "email is required"},
		{name: "unauthorized", err: domain.ErrTokenExpired, status: 401, message: "access token expired"},
		{name: "forbidden", err: domain.ErrInsufficientRole, status: 403, message: "forbidden access"},
		{name: "not found", err: domain.ErrApplicationNotFound, status: 404, message: "application not found"},
		{name: "conflict", err: domain.ErrAlreadyApplied, status: 409, message: "you already have a pending application"},
		{name: "processor", err: fmt.Errorf("%w: card declined", domain.ErrPaymentProcessor), status: 502, message: "payment processor unavailable"},
		{name: "unclassified", err: errors.New("dial tcp: refused"), status: 500, message: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return FromError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}
