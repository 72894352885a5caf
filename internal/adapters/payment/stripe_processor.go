package payment

import (
	"context"
	"errors"

	"bms-backend/internal/core/services"
	"bms-backend/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
)

// ErrNotConfigured is returned when no secret key was supplied
var ErrNotConfigured = errors.New("payment processor is not configured")

// StripeProcessor opens payment intents through the Stripe API
type StripeProcessor struct {
	client *stripe.Client
}

// NewStripeProcessor creates a processor for secretKey. An empty key yields
// a processor whose calls fail with ErrNotConfigured.
func NewStripeProcessor(secretKey string, opts ...stripe.ClientOption) *StripeProcessor {
	if secretKey == "" {
		logger.Logger.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
		return &StripeProcessor{}
	}
	return &StripeProcessor{client: stripe.NewClient(secretKey, opts...)}
}

// CreatePaymentIntent implements services.PaymentProcessor
func (p *StripeProcessor) CreatePaymentIntent(ctx context.Context, req *services.PaymentIntentRequest) (*services.PaymentIntent, error) {
	if p.client == nil {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentCreateParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice(req.MethodTypes),
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	for k, v := range req.Metadata {
		if v != "" {
			params.AddMetadata(k, v)
		}
	}

	pi, err := p.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			logger.WithFields(logrus.Fields{
				"type":       stripeErr.Type,
				"code":       stripeErr.Code,
				"request_id": stripeErr.RequestID,
			}).Warn("stripe rejected payment intent")
		}
		return nil, err
	}

	return &services.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}
