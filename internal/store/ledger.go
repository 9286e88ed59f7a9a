package store

import (
	"fmt"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// InsertLedgerEntries appends entries to the permanent ledger.
func (s *Store) InsertLedgerEntries(entries []model.Transaction) error {
	if len(entries) == 0 {
		return nil
	}
	if err := s.db.Create(&entries).Error; err != nil {
		return fmt.Errorf("inserting ledger entries: %w", err)
	}
	return nil
}

// ListLedger returns all ledger entries, newest date first.
func (s *Store) ListLedger() ([]model.Transaction, error) {
	var entries []model.Transaction
	err := s.db.Order("date DESC, id DESC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	return entries, nil
}
