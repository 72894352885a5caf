package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique index violation
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// Unique index names as created by AutoMigrate (idx_<table>_<column>)
const (
	IdxApplicationsPendingEmail = "idx_applications_pending_email"
	IdxApplicationsApartmentID  = "idx_applications_apartment_id"
)

// IsDuplicateKeyOn reports whether err is a unique violation of the named
// index. Only the key name is compared; the message also carries the
// offending value, which is caller-controlled.
func IsDuplicateKeyOn(err error, index string) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return false
	}
	return duplicateKeyName(me.Message) == index
}

// duplicateKeyName extracts the index from "Duplicate entry '<v>' for key
// '<key>'". MySQL 8 prefixes the key with "<table>.".
func duplicateKeyName(msg string) string {
	const marker = "for key '"
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[i+len(marker):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return key
}
