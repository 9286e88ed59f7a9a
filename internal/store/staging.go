package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// editDateFormat is the format for user-supplied date edits.
const editDateFormat = "2006-01-02"

// InsertStagingRows bulk-inserts rows for a session. Insertion order fixes
// the review ordering, since rows are listed by ascending id.
func (s *Store) InsertStagingRows(rows []model.StagingTransaction) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("inserting staging rows: %w", err)
	}
	return nil
}

// AddEmptyStagingRow appends one row with all fields at defaults, for the
// user "add row" action. Draft sessions only.
func (s *Store) AddEmptyStagingRow(importID string) (*model.StagingTransaction, error) {
	if err := s.requireDraft(importID); err != nil {
		return nil, err
	}
	row := &model.StagingTransaction{ImportID: importID}
	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("adding staging row: %w", err)
	}
	return row, nil
}

// ListStagingRows returns all rows for a session ordered by id ascending,
// matching creation order.
func (s *Store) ListStagingRows(importID string) ([]model.StagingTransaction, error) {
	var rows []model.StagingTransaction
	err := s.db.Where("import_id = ?", importID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing staging rows: %w", err)
	}
	return rows, nil
}

// CountStagingRows returns the number of staging rows in a session.
func (s *Store) CountStagingRows(importID string) (int64, error) {
	var n int64
	err := s.db.Model(&model.StagingTransaction{}).Where("import_id = ?", importID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting staging rows: %w", err)
	}
	return n, nil
}

// unset reports whether a patch value means "clear this field". The "None"
// sentinel comes from callers that serialize absent values as text.
func unset(v string) bool {
	return v == "" || v == "None"
}

// UpdateStagingFields applies a field-level patch to one staging row. Fields
// outside the allow-list are rejected; typed fields must parse or the whole
// patch is rejected before anything is written. updated_at is refreshed on
// every successful update. Draft sessions only.
func (s *Store) UpdateStagingFields(importID string, rowID uint, patch map[string]string) error {
	if err := s.requireDraft(importID); err != nil {
		return err
	}

	updates := make(map[string]any, len(patch)+1)
	for field, value := range patch {
		switch field {
		case "date":
			if unset(value) {
				updates[field] = nil
				continue
			}
			d, ok := normalize.Date(value, editDateFormat)
			if !ok {
				return fmt.Errorf("%w: date %q", ErrInvalidFieldValue, value)
			}
			updates[field] = d
		case "amount_original", "amount_eur":
			if unset(value) {
				updates[field] = decimal.NullDecimal{}
				continue
			}
			d, err := decimal.NewFromString(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%w: %s %q", ErrInvalidFieldValue, field, value)
			}
			updates[field] = decimal.NullDecimal{Decimal: d, Valid: true}
		case "currency_original":
			if unset(value) {
				updates[field] = ""
				continue
			}
			c := strings.ToUpper(strings.TrimSpace(value))
			if len(c) > 3 {
				c = c[:3]
			}
			updates[field] = c
		case "description", "account_name", "category", "notes":
			updates[field] = strings.TrimSpace(value)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.Model(&model.StagingTransaction{}).
		Where("id = ? AND import_id = ?", rowID, importID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("updating staging row: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRowNotFound
	}
	return nil
}

// DeleteStagingRow removes one row by id. Draft sessions only.
func (s *Store) DeleteStagingRow(importID string, rowID uint) error {
	if err := s.requireDraft(importID); err != nil {
		return err
	}
	res := s.db.Where("id = ? AND import_id = ?", rowID, importID).
		Delete(&model.StagingTransaction{})
	if res.Error != nil {
		return fmt.Errorf("deleting staging row: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRowNotFound
	}
	return nil
}

// DeleteStagingRows removes a set of rows in one statement, for batch
// "mark for deletion" operations. Unknown ids are ignored. Draft sessions only.
func (s *Store) DeleteStagingRows(importID string, ids []uint) error {
	if err := s.requireDraft(importID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	err := s.db.Where("import_id = ? AND id IN ?", importID, ids).
		Delete(&model.StagingTransaction{}).Error
	if err != nil {
		return fmt.Errorf("deleting staging rows: %w", err)
	}
	return nil
}

// PurgeStagingRows removes every staging row for a session. Used by commit
// and cascade deletes, always inside a caller-owned transaction.
func (s *Store) PurgeStagingRows(importID string) error {
	err := s.db.Where("import_id = ?", importID).Delete(&model.StagingTransaction{}).Error
	if err != nil {
		return fmt.Errorf("purging staging rows: %w", err)
	}
	return nil
}
