package repositories

import (
	"context"
	"time"

	"bms-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Payments
// ============================================================

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	var items []*models.Payment
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// ============================================================
// Coupons
// ============================================================

type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *couponRepository) GetByID(ctx context.Context, id uint) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) List(ctx context.Context, onlyAvailable bool) ([]*models.Coupon, error) {
	var items []*models.Coupon
	query := r.db.WithContext(ctx)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	err := query.Order("id").Find(&items).Error
	return items, err
}

func (r *couponRepository) SetAvailable(ctx context.Context, id uint, available bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", id).
		Update("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Coupon{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DisableExpired marks every coupon past its expiry as unavailable
func (r *couponRepository) DisableExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("available = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Update("available", false)
	return result.RowsAffected, result.Error
}
