package config

import (
	"errors"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/core/domain"
	"bms-backend/internal/pkg/logger"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg SeedConfig) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	if err := s.seedAdminUser(); err != nil {
		return err
	}
	return nil
}

// seedAdminUser makes SEED_ADMIN_EMAIL an admin, creating the user when
// needed. Without it nobody could pass the admin gate on a fresh database.
func (s *Seeder) seedAdminUser() error {
	email := domain.NormalizeEmail(s.cfg.AdminEmail)
	if email == "" {
		return nil
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{Email: email, Role: domain.RoleAdmin}
		if err := s.db.Create(&user).Error; err != nil {
			return err
		}
		logger.WithField("email", user.Email).Info("seeded admin user")
		return nil
	case err != nil:
		return err
	}

	if user.IsAdmin() {
		return nil
	}

	if err := s.db.Model(&user).Update("role", domain.RoleAdmin).Error; err != nil {
		return err
	}
	logger.WithField("email", user.Email).Info("promoted seed user to admin")
	return nil
}
