package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"
	"bms-backend/internal/pkg/logger"
	"bms-backend/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ComputeChargeAmount applies a percentage discount to a rent and converts
// the result to minor currency units: round(rent * (1 - d/100) * 100).
func ComputeChargeAmount(baseRent, discountPercent float64) (int64, error) {
	if !(baseRent > 0) {
		return 0, domain.ErrInvalidRent
	}

	discounted, err := money.ApplyDiscount(baseRent, discountPercent)
	if err != nil {
		return 0, domain.ErrInvalidDiscount
	}

	amount, err := money.ToMinorUnits(discounted)
	if err != nil {
		return 0, domain.ErrInvalidRent
	}
	return amount, nil
}

// PaymentService creates payment intents and keeps the payment ledger
type PaymentService struct {
	processor   PaymentProcessor
	paymentRepo repositories.PaymentRepository
	couponRepo  repositories.CouponRepository
	currency    string
	methodTypes []string
	now         func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	processor PaymentProcessor,
	paymentRepo repositories.PaymentRepository,
	couponRepo repositories.CouponRepository,
	currency string,
	methodTypes []string,
) *PaymentService {
	return &PaymentService{
		processor:   processor,
		paymentRepo: paymentRepo,
		couponRepo:  couponRepo,
		currency:    currency,
		methodTypes: methodTypes,
		now:         time.Now,
	}
}

// CreateIntentInput represents a payment intent request
type CreateIntentInput struct {
	Rent       float64 `json:"price" validate:"gt=0"`
	CouponCode string  `json:"coupon_code" validate:"max=50"`
}

// CreateIntentOutput is returned to the paying client
type CreateIntentOutput struct {
	ClientSecret    string  `json:"clientSecret"`
	IntentID        string  `json:"intentId"`
	Amount          int64   `json:"amount"`
	Currency        string  `json:"currency"`
	DiscountPercent float64 `json:"discountPercent"`
}

// RecordPaymentInput represents a completed payment to store
type RecordPaymentInput struct {
	Email         string  `json:"email" validate:"required,email"`
	ApartmentID   string  `json:"apartmentId" validate:"max=64"`
	Month         string  `json:"month" validate:"max=20"`
	Rent          float64 `json:"rent" validate:"gt=0"`
	CouponCode    string  `json:"coupon_code" validate:"max=50"`
	TransactionID string  `json:"transactionId" validate:"required,max=100"`
}

// CreateIntent computes the discounted charge and opens a payment intent
func (s *PaymentService) CreateIntent(ctx context.Context, email string, input *CreateIntentInput) (*CreateIntentOutput, error) {
	discount, err := s.resolveDiscount(ctx, input.CouponCode, true)
	if err != nil {
		return nil, err
	}

	amount, err := ComputeChargeAmount(input.Rent, discount)
	if err != nil {
		return nil, err
	}

	intent, err := s.processor.CreatePaymentIntent(ctx, &PaymentIntentRequest{
		Amount:       amount,
		Currency:     s.currency,
		MethodTypes:  s.methodTypes,
		ReceiptEmail: email,
		Description:  "Apartment rent",
		Metadata: map[string]string{
			"email":  email,
			"coupon": normalizeCouponCode(input.CouponCode),
		},
	})
	if err != nil {
		logger.WithFields(logrus.Fields{"email": email, "amount": amount}).WithError(err).Error("payment intent failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentProcessor, err)
	}

	logger.WithFields(logrus.Fields{
		"email":     email,
		"intent_id": intent.ID,
		"amount":    money.FormatMinor(amount),
		"currency":  s.currency,
	}).Info("payment intent created")

	return &CreateIntentOutput{
		ClientSecret:    intent.ClientSecret,
		IntentID:        intent.ID,
		Amount:          amount,
		Currency:        s.currency,
		DiscountPercent: discount,
	}, nil
}

// RecordPayment stores a payment in the ledger. The coupon only needs to
// exist; it may have expired since the intent was created.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*models.Payment, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	discount, err := s.resolveDiscount(ctx, input.CouponCode, false)
	if err != nil {
		return nil, err
	}

	amount, err := ComputeChargeAmount(input.Rent, discount)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:              uuid.NewString(),
		Email:           email,
		ApartmentID:     input.ApartmentID,
		Month:           input.Month,
		Rent:            input.Rent,
		CouponCode:      normalizeCouponCode(input.CouponCode),
		DiscountPercent: discount,
		Amount:          amount,
		Currency:        s.currency,
		TransactionID:   input.TransactionID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{"email": email, "payment_id": payment.ID}).Info("payment recorded")
	return payment, nil
}

// ListPayments lists the payments of one payer
func (s *PaymentService) ListPayments(ctx context.Context, email string) ([]*models.Payment, error) {
	return s.paymentRepo.ListByEmail(ctx, domain.NormalizeEmail(email))
}

// resolveDiscount returns the coupon's discount percent, or 0 without a code
func (s *PaymentService) resolveDiscount(ctx context.Context, code string, mustBeUsable bool) (float64, error) {
	code = normalizeCouponCode(code)
	if code == "" {
		return 0, nil
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if repositories.IsNotFound(err) {
			return 0, domain.ErrCouponInvalid
		}
		return 0, err
	}

	if mustBeUsable && !coupon.IsUsable(s.now()) {
		return 0, domain.ErrCouponInvalid
	}
	return coupon.DiscountPercent, nil
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
