package services

import (
	"context"
	"testing"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCatalogService_ListApartments(t *testing.T) {
	apts := &mockApartmentRepo{items: []*models.Apartment{{ID: 1, ApartmentNo: "101", Rent: 900}}}
	svc := NewCatalogService(apts, &mockAnnouncementRepo{}, &mockCouponRepo{})

	out, err := svc.ListApartments(context.Background(), 500, 1500, 6, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Count)
	assert.Len(t, out.Apartments, 1)
	assert.Equal(t, float64(500), apts.lastFilter.MinRent)
	assert.Equal(t, float64(1500), apts.lastFilter.MaxRent)
	assert.Equal(t, 6, apts.lastOffset)
	assert.Equal(t, 6, apts.lastLimit)
}

func TestCatalogService_ListApartmentsRange(t *testing.T) {
	apts := &mockApartmentRepo{}
	svc := NewCatalogService(apts, &mockAnnouncementRepo{}, &mockCouponRepo{})

	_, err := svc.ListApartments(context.Background(), 2000, 1000, 0, 6)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ListApartments(context.Background(), -5, -1, 0, 6)
	require.NoError(t, err)
	assert.Equal(t, float64(0), apts.lastFilter.MinRent)
	assert.Equal(t, float64(0), apts.lastFilter.MaxRent)
}

func TestCatalogService_CreateAndGetApartment(t *testing.T) {
	svc := NewCatalogService(&mockApartmentRepo{}, &mockAnnouncementRepo{}, &mockCouponRepo{})
	ctx := context.Background()

	apt, err := svc.CreateApartment(ctx, &CreateApartmentInput{ApartmentNo: " 101 ", FloorNo: "1", BlockName: "A", Rent: 900})
	require.NoError(t, err)
	assert.Equal(t, "101", apt.ApartmentNo)

	got, err := svc.GetApartment(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, apt, got)

	_, err = svc.GetApartment(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrApartmentNotFound)

	_, err = svc.CreateApartment(ctx, &CreateApartmentInput{ApartmentNo: "102", Rent: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidRent)
}

func TestCatalogService_Announcements(t *testing.T) {
	repo := &mockAnnouncementRepo{}
	svc := NewCatalogService(&mockApartmentRepo{}, repo, &mockCouponRepo{})
	ctx := context.Background()

	a, err := svc.CreateAnnouncement(ctx, "admin@x.com", &CreateAnnouncementInput{Title: " Water outage ", Description: "Tuesday"})
	require.NoError(t, err)
	assert.Equal(t, "Water outage", a.Title)
	assert.Equal(t, "admin@x.com", a.CreatedBy)

	_, err = svc.CreateAnnouncement(ctx, "admin@x.com", &CreateAnnouncementInput{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := svc.ListAnnouncements(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCatalogService_CreateCoupon(t *testing.T) {
	var stored *models.Coupon
	repo := &mockCouponRepo{
		createFn: func(_ context.Context, c *models.Coupon) error {
			if stored != nil && stored.Code == c.Code {
				return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'coupons.idx_coupons_code'"}
			}
			stored = c
			return nil
		},
	}
	svc := NewCatalogService(&mockApartmentRepo{}, &mockAnnouncementRepo{}, repo)
	ctx := context.Background()

	c, err := svc.CreateCoupon(ctx, &CreateCouponInput{Code: " spring10 ", DiscountPercent: 10})
	require.NoError(t, err)
	assert.Equal(t, "SPRING10", c.Code)
	assert.True(t, c.Available)

	_, err = svc.CreateCoupon(ctx, &CreateCouponInput{Code: "Spring10", DiscountPercent: 5})
	assert.ErrorIs(t, err, domain.ErrCouponExists)

	_, err = svc.CreateCoupon(ctx, &CreateCouponInput{Code: "BIG", DiscountPercent: 150})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	_, err = svc.CreateCoupon(ctx, &CreateCouponInput{Code: " ", DiscountPercent: 5})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogService_ListCouponsHidesUnusable(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	all := []*models.Coupon{
		{Code: "OPEN", Available: true},
		{Code: "LATER", Available: true, ExpiresAt: &future},
		{Code: "GONE", Available: true, ExpiresAt: &past},
		{Code: "OFF", Available: false},
	}
	repo := &mockCouponRepo{
		listFn: func(_ context.Context, onlyAvailable bool) ([]*models.Coupon, error) {
			if !onlyAvailable {
				return all, nil
			}
			return all[:3], nil
		},
	}
	svc := NewCatalogService(&mockApartmentRepo{}, &mockAnnouncementRepo{}, repo)
	svc.now = func() time.Time { return now }

	public, err := svc.ListCoupons(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "OPEN", public[0].Code)
	assert.Equal(t, "LATER", public[1].Code)

	everything, err := svc.ListCoupons(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, everything, 4)
}

func TestCatalogService_CouponAdministration(t *testing.T) {
	repo := &mockCouponRepo{
		setAvailableFn: func(_ context.Context, id uint, _ bool) error {
			if id != 1 {
				return gorm.ErrRecordNotFound
			}
			return nil
		},
		deleteFn: func(_ context.Context, id uint) error {
			if id != 1 {
				return gorm.ErrRecordNotFound
			}
			return nil
		},
	}
	svc := NewCatalogService(&mockApartmentRepo{}, &mockAnnouncementRepo{}, repo)
	ctx := context.Background()

	assert.NoError(t, svc.SetCouponAvailability(ctx, 1, false))
	assert.ErrorIs(t, svc.SetCouponAvailability(ctx, 2, false), domain.ErrCouponNotFound)
	assert.NoError(t, svc.DeleteCoupon(ctx, 1))
	assert.ErrorIs(t, svc.DeleteCoupon(ctx, 2), domain.ErrCouponNotFound)
}
