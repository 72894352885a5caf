package repositories

import (
	"context"

	"bms-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Apartments
// ============================================================

type apartmentRepository struct {
	db *gorm.DB
}

// NewApartmentRepository creates a new apartment repository
func NewApartmentRepository(db *gorm.DB) ApartmentRepository {
	return &apartmentRepository{db: db}
}

func (r *apartmentRepository) Create(ctx context.Context, apt *models.Apartment) error {
	return r.db.WithContext(ctx).Create(apt).Error
}

func (r *apartmentRepository) GetByID(ctx context.Context, id uint) (*models.Apartment, error) {
	var apt models.Apartment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&apt).Error; err != nil {
		return nil, err
	}
	return &apt, nil
}

// List returns one page of apartments within the rent range plus the total
// number of matches
func (r *apartmentRepository) List(ctx context.Context, filter ApartmentFilter, offset, limit int) ([]*models.Apartment, int64, error) {
	var apts []*models.Apartment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Apartment{}).Where("rent >= ?", filter.MinRent)
	if filter.MaxRent > 0 {
		query = query.Where("rent <= ?", filter.MaxRent)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id").Offset(offset).Limit(limit).Find(&apts).Error; err != nil {
		return nil, 0, err
	}

	return apts, total, nil
}

// ============================================================
// Announcements
// ============================================================

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	var items []*models.Announcement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}
