package repositories

import (
	"context"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a new application
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID
func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByIDForUpdate gets an application and locks its row until the
// surrounding transaction ends
func (r *applicationRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FindPendingByEmail gets the open application of an applicant
func (r *applicationRepository) FindPendingByEmail(ctx context.Context, email string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, domain.StatusPending).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByApartmentID gets the stored application for an apartment, whatever its status
func (r *applicationRepository) FindByApartmentID(ctx context.Context, apartmentID string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("apartment_id = ?", apartmentID).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByStatus lists applications in a status, oldest first
func (r *applicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at").
		Find(&apps).Error
	return apps, err
}

// ListByEmail lists every application of an applicant
func (r *applicationRepository) ListByEmail(ctx context.Context, email string) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("submitted_at DESC").
		Find(&apps).Error
	return apps, err
}

// List lists all applications
func (r *applicationRepository) List(ctx context.Context) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&apps).Error
	return apps, err
}

// CountByStatus counts applications in a status
func (r *applicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// MarkAccepted moves a pending application to accepted and releases the
// applicant's pending slot
func (r *applicationRepository) MarkAccepted(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":        domain.StatusAccepted,
			"pending_email": nil,
			"accepted_at":   at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an application
func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
