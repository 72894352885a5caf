package services

import (
	"context"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"
	"bms-backend/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

// UserService manages the user directory
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
}

// Register creates the user unless the email is already known, in which
// case the existing user is returned with created=false
func (s *UserService) Register(ctx context.Context, input *RegisterInput) (*models.User, bool, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, false, domain.ErrEmailRequired
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !repositories.IsNotFound(err) {
		return nil, false, err
	}

	user := &models.User{
		Email:    email,
		Name:     input.Name,
		PhotoURL: input.PhotoURL,
		Role:     domain.RoleNone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if repositories.IsDuplicateKey(err) {
			existing, getErr := s.userRepo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	logger.WithField("email", email).Info("user registered")
	return user, true, nil
}

// PromoteToAdmin grants the admin role to a user
func (s *UserService) PromoteToAdmin(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, id, domain.RoleAdmin); err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.Role = domain.RoleAdmin

	logger.WithFields(logrus.Fields{"user_id": id, "email": user.Email}).Info("user promoted to admin")
	return user, nil
}

// ListUsers lists users with pagination
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListUsersOutput{Users: users, Total: total}, nil
}

// ListByRole lists users holding exactly role
func (s *UserService) ListByRole(ctx context.Context, rawRole string) ([]*models.User, error) {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	return s.userRepo.ListByRole(ctx, role)
}

// ResetMemberRoles removes the member role from every member. Admins keep
// their role.
func (s *UserService) ResetMemberRoles(ctx context.Context) (int64, error) {
	n, err := s.userRepo.ClearRole(ctx, domain.RoleMember)
	if err != nil {
		return 0, err
	}
	logger.WithField("count", n).Info("member roles reset")
	return n, nil
}

// DeleteUser removes a user. Admins cannot remove themselves.
func (s *UserService) DeleteUser(ctx context.Context, id uint, requesterEmail string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.Email == domain.NormalizeEmail(requesterEmail) {
		return domain.ErrDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrUserNotFound
		}
		return err
	}

	logger.WithFields(logrus.Fields{"user_id": id, "email": user.Email}).Info("user deleted")
	return nil
}

// HasRole reports whether the user identified by email holds role. Callers
// may only ask about themselves. Unknown users simply do not hold the role.
func (s *UserService) HasRole(ctx context.Context, requesterEmail, email string, role domain.Role) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email != domain.NormalizeEmail(requesterEmail) {
		return false, domain.ErrSelfOnly
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return user.Role == role, nil
}

// GetByEmail returns the directory entry for email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
