package services

import "context"

// PaymentProcessor creates payment intents with an external processor
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntent, error)
}

// PaymentIntentRequest is what the processor needs to open an intent.
// Amount is in minor currency units.
type PaymentIntentRequest struct {
	Amount       int64
	Currency     string
	MethodTypes  []string
	ReceiptEmail string
	Description  string
	Metadata     map[string]string
}

// PaymentIntent is the processor's answer
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}
