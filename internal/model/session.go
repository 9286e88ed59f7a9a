package model

import "time"

// SessionStatus represents the lifecycle state of an import session.
type SessionStatus string

const (
	// StatusDraft is the initial state; staging rows may be edited,
	// the session may be committed or deleted.
	StatusDraft SessionStatus = "draft"
	// StatusCommitted is terminal; the session's staging rows have been
	// promoted to the ledger and no longer exist.
	StatusCommitted SessionStatus = "committed"
)

// ImportSession is one batch-import attempt spanning one or more statement files.
// Deletion removes the record entirely rather than using a third status.
type ImportSession struct {
	ID          string        `gorm:"primaryKey"`
	Status      SessionStatus `gorm:"not null;default:draft;index"`
	CreatedAt   time.Time     `gorm:"not null"`
	CommittedAt *time.Time
}

// TableName maps the model to the import_sessions table.
func (ImportSession) TableName() string { return "import_sessions" }
