package repositories

import (
	"context"

	"gorm.io/gorm"
)

// gormTxRunner implements TxRunner interface
type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner creates a transaction runner over db
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise
func (r *gormTxRunner) WithinTransaction(ctx context.Context, fn func(users UserRepository, apps ApplicationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepository(tx), NewApplicationRepository(tx))
	})
}
