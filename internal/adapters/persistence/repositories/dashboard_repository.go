package repositories

import (
	"context"
	"time"

	"bms-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountUsersByRole(ctx context.Context) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountApplicationsByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountApartments(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Apartment{}).Count(&total).Error
	return total, err
}

func (r *dashboardRepository) SumPayments(ctx context.Context, since time.Time) (PaymentTotals, error) {
	var totals PaymentTotals
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("created_at >= ?", since).
		Scan(&totals).Error
	return totals, err
}

func (r *dashboardRepository) RecentApplications(ctx context.Context, limit int) ([]*models.Application, error) {
	var items []*models.Application
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
