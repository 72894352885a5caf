package services

import (
	"context"
	"time"

	"bms-backend/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 2 * time.Minute

// CronService runs periodic housekeeping jobs
type CronService struct {
	cron         *cron.Cron
	catalog      *CatalogService
	applications *ApplicationService
	schedule     string
}

// NewCronService creates a new cron service
func NewCronService(catalog *CatalogService, applications *ApplicationService, schedule string) *CronService {
	return &CronService{
		cron:         cron.New(),
		catalog:      catalog,
		applications: applications,
		schedule:     schedule,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runHousekeeping); err != nil {
		return err
	}
	s.cron.Start()
	logger.WithField("schedule", s.schedule).Info("cron service started")
	return nil
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	logger.Logger.Info("cron service stopped")
}

func (s *CronService) runHousekeeping() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.Housekeeping(ctx)
}

// Housekeeping disables expired coupons and reports the pending backlog
func (s *CronService) Housekeeping(ctx context.Context) (disabled, pending int64) {
	var err error

	disabled, err = s.catalog.DisableExpiredCoupons(ctx)
	if err != nil {
		logger.Logger.WithError(err).Error("coupon sweep failed")
	}

	pending, err = s.applications.PendingBacklog(ctx)
	if err != nil {
		logger.Logger.WithError(err).Error("pending backlog count failed")
		return disabled, 0
	}
	logger.WithField("pending", pending).Info("pending application backlog")

	return disabled, pending
}
