package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StagingTransaction is one candidate ledger entry under review inside an
// import session. Typed fields are nullable because a user may clear them
// mid-edit; commit validation requires them to be set again.
type StagingTransaction struct {
	ID               uint      `gorm:"primaryKey"`
	ImportID         string    `gorm:"not null;index"`
	Date             *time.Time
	Description      string
	CurrencyOriginal string              `gorm:"size:3"`
	AmountOriginal   decimal.NullDecimal `gorm:"type:numeric"`
	AmountEUR        decimal.NullDecimal `gorm:"column:amount_eur;type:numeric"`
	AccountName      string
	Category         string
	Notes            string
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName maps the model to the staging_transactions table.
func (StagingTransaction) TableName() string { return "staging_transactions" }
