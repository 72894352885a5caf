package repositories

import (
	"context"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/core/domain"
)

// UserRepository is the directory of users keyed by email
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) error
	ClearRole(ctx context.Context, role domain.Role) (int64, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error)
}

// ApplicationRepository stores apartment applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Application, error)
	FindPendingByEmail(ctx context.Context, email string) (*models.Application, error)
	FindByApartmentID(ctx context.Context, apartmentID string) (*models.Application, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*models.Application, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
	CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error)
	MarkAccepted(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// TxRunner runs fn inside one database transaction. The repositories passed
// to fn are bound to that transaction; returning an error rolls back.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(users UserRepository, apps ApplicationRepository) error) error
}

// ApartmentFilter narrows apartment listings by rent
type ApartmentFilter struct {
	MinRent float64
	MaxRent float64
}

// ApartmentRepository stores the apartment catalog
type ApartmentRepository interface {
	Create(ctx context.Context, apt *models.Apartment) error
	GetByID(ctx context.Context, id uint) (*models.Apartment, error)
	List(ctx context.Context, filter ApartmentFilter, offset, limit int) ([]*models.Apartment, int64, error)
}

// AnnouncementRepository stores announcements
type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	List(ctx context.Context) ([]*models.Announcement, error)
}

// PaymentRepository stores the payment ledger
type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByEmail(ctx context.Context, email string) ([]*models.Payment, error)
}

// CouponRepository stores discount coupons
type CouponRepository interface {
	Create(ctx context.Context, c *models.Coupon) error
	GetByID(ctx context.Context, id uint) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	List(ctx context.Context, onlyAvailable bool) ([]*models.Coupon, error)
	SetAvailable(ctx context.Context, id uint, available bool) error
	Delete(ctx context.Context, id uint) error
	DisableExpired(ctx context.Context, now time.Time) (int64, error)
}

// RoleCount is the number of users holding one role
type RoleCount struct {
	Role  domain.Role
	Total int64
}

// StatusCount is the number of applications in one status
type StatusCount struct {
	Status domain.ApplicationStatus
	Total  int64
}

// PaymentTotals summarizes ledger entries in a window
type PaymentTotals struct {
	Count  int64
	Amount int64
}

// DashboardRepository answers aggregate queries for the dashboards
type DashboardRepository interface {
	CountUsersByRole(ctx context.Context) ([]RoleCount, error)
	CountApplicationsByStatus(ctx context.Context) ([]StatusCount, error)
	CountApartments(ctx context.Context) (int64, error)
	SumPayments(ctx context.Context, since time.Time) (PaymentTotals, error)
	RecentApplications(ctx context.Context, limit int) ([]*models.Application, error)
}
