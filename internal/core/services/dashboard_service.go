package services

import (
	"context"
	"fmt"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"
)

const recentApplicationsLimit = 5

// DashboardService handles dashboard operations
type DashboardService struct {
	statsRepo   repositories.DashboardRepository
	appRepo     repositories.ApplicationRepository
	paymentRepo repositories.PaymentRepository
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	statsRepo repositories.DashboardRepository,
	appRepo repositories.ApplicationRepository,
	paymentRepo repositories.PaymentRepository,
) *DashboardService {
	return &DashboardService{
		statsRepo:   statsRepo,
		appRepo:     appRepo,
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers   int64 `json:"total_users"`
	TotalAdmins  int64 `json:"total_admins"`
	TotalMembers int64 `json:"total_members"`
	Unassigned   int64 `json:"unassigned_users"`

	// Application Statistics
	PendingApplications  int64 `json:"pending_applications"`
	AcceptedApplications int64 `json:"accepted_applications"`

	// Occupancy
	TotalApartments int64   `json:"total_apartments"`
	OccupancyRate   float64 `json:"occupancy_rate"`

	// Monthly Statistics, amounts in minor units
	PaymentsThisMonth  int64 `json:"payments_this_month"`
	CollectedThisMonth int64 `json:"collected_this_month"`

	RecentApplications []*models.Application `json:"recent_applications"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	roles, err := s.statsRepo.CountUsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	for _, rc := range roles {
		data.TotalUsers += rc.Total
		switch rc.Role {
		case domain.RoleAdmin:
			data.TotalAdmins = rc.Total
		case domain.RoleMember:
			data.TotalMembers = rc.Total
		default:
			data.Unassigned += rc.Total
		}
	}

	statuses, err := s.statsRepo.CountApplicationsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	for _, sc := range statuses {
		switch sc.Status {
		case domain.StatusPending:
			data.PendingApplications = sc.Total
		case domain.StatusAccepted:
			data.AcceptedApplications = sc.Total
		}
	}

	if data.TotalApartments, err = s.statsRepo.CountApartments(ctx); err != nil {
		return nil, fmt.Errorf("count apartments: %w", err)
	}
	if data.TotalApartments > 0 {
		data.OccupancyRate = float64(data.AcceptedApplications) / float64(data.TotalApartments)
	}

	totals, err := s.statsRepo.SumPayments(ctx, startOfMonth(s.now()))
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}
	data.PaymentsThisMonth = totals.Count
	data.CollectedThisMonth = totals.Amount

	if data.RecentApplications, err = s.statsRepo.RecentApplications(ctx, recentApplicationsLimit); err != nil {
		return nil, fmt.Errorf("recent applications: %w", err)
	}

	return data, nil
}

// ============================================================
// Member Dashboard
// ============================================================

// MemberDashboardData represents a member's own overview
type MemberDashboardData struct {
	Applications []*models.Application `json:"applications"`
	PaymentCount int                   `json:"payment_count"`
	TotalPaid    int64                 `json:"total_paid"`
	LastPayment  *models.Payment       `json:"last_payment,omitempty"`
}

// GetMemberDashboard returns the caller's applications and payment summary
func (s *DashboardService) GetMemberDashboard(ctx context.Context, email string) (*MemberDashboardData, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	apps, err := s.appRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	payments, err := s.paymentRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	data := &MemberDashboardData{
		Applications: apps,
		PaymentCount: len(payments),
	}
	for _, p := range payments {
		data.TotalPaid += p.Amount
	}
	// newest first
	if len(payments) > 0 {
		data.LastPayment = payments[0]
	}

	return data, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
