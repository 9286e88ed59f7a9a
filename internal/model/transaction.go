package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a permanent ledger entry. Amounts are stored both in the
// original currency and in EUR; AmountEUR falls back to AmountOriginal when
// no explicit conversion was supplied at commit time.
type Transaction struct {
	ID               uint            `gorm:"primaryKey"`
	Date             time.Time       `gorm:"not null;index"`
	Description      string          `gorm:"not null"`
	CurrencyOriginal string          `gorm:"size:3"`
	AmountOriginal   decimal.Decimal `gorm:"type:numeric;not null"`
	AmountEUR        decimal.Decimal `gorm:"column:amount_eur;type:numeric;not null"`
	AccountName      string
	Category         string
	Notes            string
}

// TableName maps the model to the transactions table.
func (Transaction) TableName() string { return "transactions" }
