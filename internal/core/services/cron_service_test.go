package services

import (
	"context"
	"testing"
	"time"

	"bms-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService_Housekeeping(t *testing.T) {
	var sweptAt time.Time
	coupons := &mockCouponRepo{
		disableExpiredFn: func(_ context.Context, now time.Time) (int64, error) {
			sweptAt = now
			return 3, nil
		},
	}
	catalog := NewCatalogService(&mockApartmentRepo{}, &mockAnnouncementRepo{}, coupons)
	fixed := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return fixed }

	store, apps, _ := newApplicationFixture()
	store.addUser("a@x.com", domain.RoleNone)
	_, err := apps.Submit(context.Background(), submitInput("a@x.com", "1"))
	require.NoError(t, err)
	_, err = apps.Submit(context.Background(), submitInput("b@x.com", "2"))
	require.NoError(t, err)

	cronSvc := NewCronService(catalog, apps, "@daily")
	disabled, pending := cronSvc.Housekeeping(context.Background())

	assert.Equal(t, int64(3), disabled)
	assert.Equal(t, int64(2), pending)
	assert.True(t, sweptAt.Equal(fixed))
}

func TestCronService_StartRejectsBadSchedule(t *testing.T) {
	catalog := NewCatalogService(&mockApartmentRepo{}, &mockAnnouncementRepo{}, &mockCouponRepo{})
	_, apps, _ := newApplicationFixture()

	cronSvc := NewCronService(catalog, apps, "not a schedule")
	assert.Error(t, cronSvc.Start())
}

func TestCronService_StartStop(t *testing.T) {
	catalog := NewCatalogService(&mockApartmentRepo{}, &mockAnnouncementRepo{}, &mockCouponRepo{})
	_, apps, _ := newApplicationFixture()

	cronSvc := NewCronService(catalog, apps, "@every 1h")
	require.NoError(t, cronSvc.Start())
	cronSvc.Stop()
}
