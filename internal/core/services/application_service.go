package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"bms-backend/internal/adapters/persistence/models"
	"bms-backend/internal/adapters/persistence/repositories"
	"bms-backend/internal/core/domain"
	"bms-backend/internal/pkg/logger"
	"bms-backend/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ApplicationService runs the apartment application workflow:
// pending -> accepted (applicant becomes member) | rejected (record removed)
type ApplicationService struct {
	appRepo       repositories.ApplicationRepository
	apartmentRepo repositories.ApartmentRepository
	tx            repositories.TxRunner
	recorder      metrics.Recorder
	now           func() time.Time
}

// NewApplicationService creates a new application service
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	apartmentRepo repositories.ApartmentRepository,
	tx repositories.TxRunner,
	recorder metrics.Recorder,
) *ApplicationService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &ApplicationService{
		appRepo:       appRepo,
		apartmentRepo: apartmentRepo,
		tx:            tx,
		recorder:      recorder,
		now:           time.Now,
	}
}

// SubmitInput represents an application submission
type SubmitInput struct {
	ApartmentID string     `json:"apartmentId" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Name        string     `json:"name" validate:"max=100"`
	FloorNo     string     `json:"floorNo" validate:"max=20"`
	BlockName   string     `json:"blockName" validate:"max=20"`
	ApartmentNo string     `json:"apartmentNo" validate:"max=20"`
	Rent        float64    `json:"rent" validate:"gt=0"`
	Date        *time.Time `json:"date"`
}

// Submit stores a new pending application. An applicant may hold one
// pending application and an apartment may appear in one stored application.
func (s *ApplicationService) Submit(ctx context.Context, input *SubmitInput) (*models.Application, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if strings.TrimSpace(input.ApartmentID) == "" {
		return nil, domain.NewValidationError("apartmentId is required")
	}
	if input.Rent <= 0 {
		return nil, domain.ErrInvalidRent
	}

	apartmentID, err := s.resolveApartment(ctx, input.ApartmentID)
	if err != nil {
		return nil, err
	}

	// friendly pre-checks; the unique indexes below are what actually
	// guard concurrent submissions
	if _, err := s.appRepo.FindPendingByEmail(ctx, email); err == nil {
		return nil, domain.ErrAlreadyApplied
	} else if !repositories.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.appRepo.FindByApartmentID(ctx, apartmentID); err == nil {
		return nil, domain.ErrApartmentTaken
	} else if !repositories.IsNotFound(err) {
		return nil, err
	}

	submittedAt := s.now()
	if input.Date != nil && !input.Date.IsZero() {
		submittedAt = *input.Date
	}

	pending := email
	app := &models.Application{
		ID:           uuid.NewString(),
		ApartmentID:  apartmentID,
		Email:        email,
		PendingEmail: &pending,
		Name:         strings.TrimSpace(input.Name),
		FloorNo:      input.FloorNo,
		BlockName:    input.BlockName,
		ApartmentNo:  input.ApartmentNo,
		Rent:         input.Rent,
		Status:       domain.StatusPending,
		SubmittedAt:  submittedAt,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		switch {
		case repositories.IsDuplicateKeyOn(err, repositories.IdxApplicationsPendingEmail):
			return nil, domain.ErrAlreadyApplied
		case repositories.IsDuplicateKeyOn(err, repositories.IdxApplicationsApartmentID):
			return nil, domain.ErrApartmentTaken
		}
		return nil, err
	}

	s.recorder.RecordTransition("submit")
	logger.WithFields(logrus.Fields{
		"application_id": app.ID,
		"email":          email,
		"apartment_id":   apartmentID,
	}).Info("application submitted")

	return app, nil
}

// resolveApartment checks that ref names a catalog apartment and returns
// its canonical id, so "07" and "7" cannot both be applied for
func (s *ApplicationService) resolveApartment(ctx context.Context, ref string) (string, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(ref), 10, 32)
	if err != nil || id == 0 {
		return "", domain.ErrApartmentNotFound
	}

	apt, err := s.apartmentRepo.GetByID(ctx, uint(id))
	if err != nil {
		if repositories.IsNotFound(err) {
			return "", domain.ErrApartmentNotFound
		}
		return "", err
	}
	return strconv.FormatUint(uint64(apt.ID), 10), nil
}

// Accept marks a pending application accepted and makes the applicant a
// member. Both writes commit together or not at all.
func (s *ApplicationService) Accept(ctx context.Context, id string) (*models.Application, error) {
	var accepted *models.Application

	err := s.tx.WithinTransaction(ctx, func(users repositories.UserRepository, apps repositories.ApplicationRepository) error {
		app, err := apps.GetByIDForUpdate(ctx, id)
		if err != nil {
			if repositories.IsNotFound(err) {
				return domain.ErrApplicationNotFound
			}
			return err
		}
		if app.Status.IsTerminal() {
			return domain.ErrApplicationConcluded
		}

		user, err := users.GetByEmail(ctx, app.Email)
		if err != nil {
			if repositories.IsNotFound(err) {
				return domain.ErrApplicantNotFound
			}
			return err
		}

		at := s.now()
		if err := apps.MarkAccepted(ctx, app.ID, at); err != nil {
			return err
		}
		if err := users.UpdateRole(ctx, user.ID, domain.RoleMember); err != nil {
			return err
		}

		app.Status = domain.StatusAccepted
		app.PendingEmail = nil
		app.AcceptedAt = &at
		accepted = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.RecordTransition("accept")
	logger.WithFields(logrus.Fields{
		"application_id": accepted.ID,
		"email":          accepted.Email,
	}).Info("application accepted, applicant promoted to member")

	return accepted, nil
}

// Reject concludes a pending application by removing it
func (s *ApplicationService) Reject(ctx context.Context, id string) (*models.Application, error) {
	var rejected *models.Application

	err := s.tx.WithinTransaction(ctx, func(_ repositories.UserRepository, apps repositories.ApplicationRepository) error {
		app, err := apps.GetByIDForUpdate(ctx, id)
		if err != nil {
			if repositories.IsNotFound(err) {
				return domain.ErrApplicationNotFound
			}
			return err
		}
		if app.Status.IsTerminal() {
			return domain.ErrApplicationConcluded
		}

		if err := apps.Delete(ctx, app.ID); err != nil {
			return err
		}

		app.Status = domain.StatusRejected
		app.PendingEmail = nil
		rejected = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.RecordTransition("reject")
	logger.WithFields(logrus.Fields{
		"application_id": rejected.ID,
		"email":          rejected.Email,
	}).Info("application rejected and removed")

	return rejected, nil
}

// Get returns one application
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// ListPending lists applications awaiting a decision
func (s *ApplicationService) ListPending(ctx context.Context) ([]*models.Application, error) {
	return s.appRepo.ListByStatus(ctx, domain.StatusPending)
}

// ListAll lists every stored application
func (s *ApplicationService) ListAll(ctx context.Context) ([]*models.Application, error) {
	return s.appRepo.List(ctx)
}

// ListByEmail lists the applications of one applicant
func (s *ApplicationService) ListByEmail(ctx context.Context, email string) ([]*models.Application, error) {
	return s.appRepo.ListByEmail(ctx, domain.NormalizeEmail(email))
}

// PendingBacklog counts applications awaiting a decision
func (s *ApplicationService) PendingBacklog(ctx context.Context) (int64, error) {
	return s.appRepo.CountByStatus(ctx, domain.StatusPending)
}
