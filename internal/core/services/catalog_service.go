package services

import (
	"context"
	"math"
	"strings"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"
	"bms-backend/internal/pkg/logger"
)

// CatalogService serves apartments, announcements and coupons
type CatalogService struct {
	apartmentRepo    repositories.ApartmentRepository
	announcementRepo repositories.AnnouncementRepository
	couponRepo       repositories.CouponRepository
	now              func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	apartmentRepo repositories.ApartmentRepository,
	announcementRepo repositories.AnnouncementRepository,
	couponRepo repositories.CouponRepository,
) *CatalogService {
	return &CatalogService{
		apartmentRepo:    apartmentRepo,
		announcementRepo: announcementRepo,
		couponRepo:       couponRepo,
		now:              time.Now,
	}
}

// ============================================================
// Apartments
// ============================================================

// ListApartmentsOutput matches the catalog client contract
type ListApartmentsOutput struct {
	Apartments []*models.Apartment `json:"apartments"`
	Count      int64               `json:"count"`
}

// CreateApartmentInput represents a new apartment
type CreateApartmentInput struct {
	ApartmentNo string  `json:"apartmentNo" validate:"required,max=20"`
	FloorNo     string  `json:"floorNo" validate:"max=20"`
	BlockName   string  `json:"blockName" validate:"max=20"`
	Rent        float64 `json:"rent" validate:"gt=0"`
	ImageURL    string  `json:"image" validate:"omitempty,url"`
}

// ListApartments returns one page of apartments within the rent range.
// A zero maxRent means unbounded.
func (s *CatalogService) ListApartments(ctx context.Context, minRent, maxRent float64, offset, limit int) (*ListApartmentsOutput, error) {
	if minRent < 0 || math.IsNaN(minRent) {
		minRent = 0
	}
	if maxRent < 0 || math.IsNaN(maxRent) || math.IsInf(maxRent, 0) {
		maxRent = 0
	}
	if maxRent > 0 && maxRent < minRent {
		return nil, domain.NewValidationError("maxRent must not be below minRent")
	}

	apts, total, err := s.apartmentRepo.List(ctx, repositories.ApartmentFilter{MinRent: minRent, MaxRent: maxRent}, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListApartmentsOutput{Apartments: apts, Count: total}, nil
}

// CreateApartment adds an apartment to the catalog
func (s *CatalogService) CreateApartment(ctx context.Context, input *CreateApartmentInput) (*models.Apartment, error) {
	if input.Rent <= 0 {
		return nil, domain.ErrInvalidRent
	}
	apt := &models.Apartment{
		ApartmentNo: strings.TrimSpace(input.ApartmentNo),
		FloorNo:     input.FloorNo,
		BlockName:   input.BlockName,
		Rent:        input.Rent,
		ImageURL:    input.ImageURL,
	}
	if err := s.apartmentRepo.Create(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// GetApartment returns one apartment
func (s *CatalogService) GetApartment(ctx context.Context, id uint) (*models.Apartment, error) {
	apt, err := s.apartmentRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrApartmentNotFound
		}
		return nil, err
	}
	return apt, nil
}

// ============================================================
// Announcements
// ============================================================

// CreateAnnouncementInput represents a new announcement
type CreateAnnouncementInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
}

// CreateAnnouncement publishes an announcement authored by author
func (s *CatalogService) CreateAnnouncement(ctx context.Context, author string, input *CreateAnnouncementInput) (*models.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	a := &models.Announcement{
		Title:       title,
		Description: input.Description,
		CreatedBy:   author,
	}
	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnnouncements lists announcements, newest first
func (s *CatalogService) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	return s.announcementRepo.List(ctx)
}

// ============================================================
// Coupons
// ============================================================

// CreateCouponInput represents a new coupon
type CreateCouponInput struct {
	Code            string     `json:"code" validate:"required,max=50"`
	DiscountPercent float64    `json:"discount" validate:"gte=0,lte=100"`
	Description     string     `json:"description" validate:"max=255"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// CreateCoupon adds a coupon; codes are case-insensitive and unique
func (s *CatalogService) CreateCoupon(ctx context.Context, input *CreateCouponInput) (*models.Coupon, error) {
	code := normalizeCouponCode(input.Code)
	if code == "" {
		return nil, domain.NewValidationError("code is required")
	}
	d := input.DiscountPercent
	if math.IsNaN(d) || d < 0 || d > 100 {
		return nil, domain.ErrInvalidDiscount
	}

	c := &models.Coupon{
		Code:            code,
		DiscountPercent: d,
		Description:     input.Description,
		Available:       true,
		ExpiresAt:       input.ExpiresAt,
	}
	if err := s.couponRepo.Create(ctx, c); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.ErrCouponExists
		}
		return nil, err
	}
	return c, nil
}

// ListCoupons lists coupons; the public listing only shows usable ones
func (s *CatalogService) ListCoupons(ctx context.Context, onlyAvailable bool) ([]*models.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx, onlyAvailable)
	if err != nil {
		return nil, err
	}
	if !onlyAvailable {
		return coupons, nil
	}

	now := s.now()
	usable := make([]*models.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.IsUsable(now) {
			usable = append(usable, c)
		}
	}
	return usable, nil
}

// SetCouponAvailability toggles whether a coupon can be used
func (s *CatalogService) SetCouponAvailability(ctx context.Context, id uint, available bool) error {
	if err := s.couponRepo.SetAvailable(ctx, id, available); err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrCouponNotFound
		}
		return err
	}
	return nil
}

// DeleteCoupon removes a coupon
func (s *CatalogService) DeleteCoupon(ctx context.Context, id uint) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrCouponNotFound
		}
		return err
	}
	return nil
}

// DisableExpiredCoupons marks coupons past their expiry unavailable
func (s *CatalogService) DisableExpiredCoupons(ctx context.Context) (int64, error) {
	n, err := s.couponRepo.DisableExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.WithField("count", n).Info("expired coupons disabled")
	}
	return n, nil
}
