package models

import (
	"time"

	"bms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Directory
// ============================================================

// User represents users table
type User struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Email     string      `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name      string      `gorm:"size:100" json:"name"`
	PhotoURL  string      `gorm:"size:512" json:"photo_url,omitempty"`
	Role      domain.Role `gorm:"size:20;index;default:''" json:"role"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds exactly the admin role
func (u *User) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// ============================================================
// Application workflow
// ============================================================

// Application represents applications table.
//
// PendingEmail mirrors Email while the application is pending and is NULL
// afterwards; its unique index allows one open application per email.
// ApartmentID is unique across all stored applications.
type Application struct {
	ID           string                   `gorm:"primaryKey;size:36" json:"id"`
	ApartmentID  string                   `gorm:"uniqueIndex;size:64;not null" json:"apartment_id"`
	Email        string                   `gorm:"index;size:191;not null" json:"email"`
	PendingEmail *string                  `gorm:"uniqueIndex;size:191" json:"-"`
	Name         string                   `gorm:"size:100" json:"name"`
	FloorNo      string                   `gorm:"size:20" json:"floor_no"`
	BlockName    string                   `gorm:"size:20" json:"block_name"`
	ApartmentNo  string                   `gorm:"size:20" json:"apartment_no"`
	Rent         float64                  `gorm:"type:decimal(12,2);not null" json:"rent"`
	Status       domain.ApplicationStatus `gorm:"size:20;index;not null" json:"status"`
	SubmittedAt  time.Time                `gorm:"not null" json:"submitted_at"`
	AcceptedAt   *time.Time               `json:"accepted_at,omitempty"`
	CreatedAt    time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

// ============================================================
// Catalog / ledger
// ============================================================

// Apartment represents apartments table
type Apartment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ApartmentNo string    `gorm:"size:20;not null" json:"apartment_no"`
	FloorNo     string    `gorm:"size:20" json:"floor_no"`
	BlockName   string    `gorm:"size:20" json:"block_name"`
	Rent        float64   `gorm:"type:decimal(12,2);index;not null" json:"rent"`
	ImageURL    string    `gorm:"size:512" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Apartment) TableName() string {
	return "apartments"
}

// Announcement represents announcements table
type Announcement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   string    `gorm:"size:191" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// Payment represents payments table. Amount is in minor currency units.
type Payment struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Email           string    `gorm:"index;size:191;not null" json:"email"`
	ApartmentID     string    `gorm:"size:64" json:"apartment_id"`
	Month           string    `gorm:"size:20" json:"month"`
	Rent            float64   `gorm:"type:decimal(12,2)" json:"rent"`
	CouponCode      string    `gorm:"size:50" json:"coupon_code,omitempty"`
	DiscountPercent float64   `gorm:"type:decimal(5,2)" json:"discount_percent"`
	Amount          int64     `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"size:3" json:"currency"`
	TransactionID   string    `gorm:"size:100;index" json:"transaction_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// Coupon represents coupons table
type Coupon struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"uniqueIndex;size:50;not null" json:"code"`
	DiscountPercent float64    `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	Description     string     `gorm:"size:255" json:"description"`
	Available       bool       `gorm:"default:true" json:"available"`
	ExpiresAt       *time.Time `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// IsUsable reports whether the coupon can be applied at t
func (c *Coupon) IsUsable(t time.Time) bool {
	if !c.Available {
		return false
	}
	return c.ExpiresAt == nil || t.Before(*c.ExpiresAt)
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Application{},
		&Apartment{},
		&Announcement{},
		&Payment{},
		&Coupon{},
	)
}
