// Package store persists import sessions, staging transactions, and the
// permanent ledger. All cross-request state lives here, keyed by session id,
// so the import workflow survives restarts. Every multi-row mutation that
// must be all-or-nothing runs inside a single database transaction.
package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

var (
	// ErrSessionNotEligible covers "session does not exist" and "session is
	// not in draft" uniformly, so callers can retry idempotently without
	// distinguishing the two.
	ErrSessionNotEligible = errors.New("import session not eligible")
	// ErrRowNotFound reports a staging row id that does not exist within the
	// given session.
	ErrRowNotFound = errors.New("staging row not found")
	// ErrUnknownField rejects a staging patch naming a field outside the
	// allow-list.
	ErrUnknownField = errors.New("unknown staging field")
	// ErrInvalidFieldValue rejects a staging patch whose value does not parse
	// for a typed field.
	ErrInvalidFieldValue = errors.New("invalid staging field value")
)

// Store provides access to the three import tables.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres, migrates the schema, and returns a Store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	err := db.AutoMigrate(&model.ImportSession{}, &model.StagingTransaction{}, &model.Transaction{})
	if err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Transact runs fn inside one database transaction. Any error rolls back
// every effect; callers observe either all of the writes or none of them.
func (s *Store) Transact(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
