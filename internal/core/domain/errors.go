package domain

import "errors"

// Error classes. Every error returned by a service wraps exactly one of these
// so the HTTP layer can pick a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
	ErrExternalService = errors.New("external service error")
)

// Auth errors
var (
	ErrTokenMissing     = wrap(ErrUnauthorized, "access token required")
	ErrTokenExpired     = wrap(ErrUnauthorized, "access token expired")
	ErrTokenInvalid     = wrap(ErrUnauthorized, "invalid access token")
	ErrInsufficientRole = wrap(ErrForbidden, "forbidden access")
	ErrSelfOnly         = wrap(ErrForbidden, "you may only query your own account")
)

// User errors
var (
	ErrEmailRequired = wrap(ErrValidation, "email is required")
	ErrInvalidRole   = wrap(ErrValidation, "invalid role")
	ErrUserNotFound  = wrap(ErrNotFound, "user not found")
	ErrDeleteSelf    = wrap(ErrConflict, "cannot delete your own account")
)

// Application errors
var (
	ErrApplicationNotFound  = wrap(ErrNotFound, "application not found")
	ErrAlreadyApplied       = wrap(ErrConflict, "you already have a pending application")
	ErrApartmentTaken       = wrap(ErrConflict, "this apartment already has an application")
	ErrApplicationConcluded = wrap(ErrConflict, "application is no longer pending")
	ErrApplicantNotFound    = wrap(ErrNotFound, "applicant is not a registered user")
)

// Payment errors
var (
	ErrInvalidRent      = wrap(ErrValidation, "rent must be greater than zero")
	ErrInvalidDiscount  = wrap(ErrValidation, "discount must be a percentage between 0 and 100")
	ErrCouponInvalid    = wrap(ErrValidation, "coupon is not valid")
	ErrCouponNotFound   = wrap(ErrNotFound, "coupon not found")
	ErrCouponExists     = wrap(ErrConflict, "coupon code already exists")
	ErrPaymentProcessor = wrap(ErrExternalService, "payment processor request failed")
)

// Catalog errors
var (
	ErrApartmentNotFound = wrap(ErrNotFound, "apartment not found")
)

// classified is an error that belongs to one of the error classes
type classified struct {
	class error
	msg   string
}

func (e *classified) Error() string { return e.msg }

func (e *classified) Unwrap() error { return e.class }

func wrap(class error, msg string) error {
	return &classified{class: class, msg: msg}
}

// NewValidationError creates an ad-hoc validation error with msg
func NewValidationError(msg string) error {
	return wrap(ErrValidation, msg)
}
