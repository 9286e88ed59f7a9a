package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// CreateSession allocates a new draft import session.
func (s *Store) CreateSession() (*model.ImportSession, error) {
	sess := &model.ImportSession{
		ID:     uuid.NewString(),
		Status: model.StatusDraft,
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, fmt.Errorf("creating import session: %w", err)
	}
	return sess, nil
}

// GetSession returns a session by id. A missing session reports
// ErrSessionNotEligible.
func (s *Store) GetSession(id string) (*model.ImportSession, error) {
	var sess model.ImportSession
	err := s.db.First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotEligible
	}
	if err != nil {
		return nil, fmt.Errorf("loading import session: %w", err)
	}
	return &sess, nil
}

// ListSessions returns sessions with the given status, newest first.
func (s *Store) ListSessions(status model.SessionStatus) ([]model.ImportSession, error) {
	var sessions []model.ImportSession
	err := s.db.Where("status = ?", status).Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("listing import sessions: %w", err)
	}
	return sessions, nil
}

// DeleteDraftSession removes a draft session and all of its staging rows in
// one transaction. A missing or committed session reports ErrSessionNotEligible.
func (s *Store) DeleteDraftSession(id string) error {
	return s.Transact(func(tx *Store) error {
		res := tx.db.Where("id = ? AND status = ?", id, model.StatusDraft).
			Delete(&model.ImportSession{})
		if res.Error != nil {
			return fmt.Errorf("deleting import session: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrSessionNotEligible
		}
		return tx.PurgeStagingRows(id)
	})
}

// MarkCommitted flips a draft session to committed. The status predicate in
// the WHERE clause is the concurrency guard: a second concurrent commit
// matches zero rows and fails as not-eligible instead of double-writing.
func (s *Store) MarkCommitted(id string) error {
	now := time.Now().UTC()
	res := s.db.Model(&model.ImportSession{}).
		Where("id = ? AND status = ?", id, model.StatusDraft).
		Updates(map[string]any{
			"status":       model.StatusCommitted,
			"committed_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("marking session committed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotEligible
	}
	return nil
}

// StaleDraftSessions returns draft sessions created before cutoff. Expiry is
// creation-time only; updated_at on staging rows does not extend a draft.
func (s *Store) StaleDraftSessions(cutoff time.Time) ([]model.ImportSession, error) {
	var sessions []model.ImportSession
	err := s.db.Where("status = ? AND created_at < ?", model.StatusDraft, cutoff).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("listing stale drafts: %w", err)
	}
	return sessions, nil
}

// DeleteSessions removes the given sessions and their staging rows in one
// transaction.
func (s *Store) DeleteSessions(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.Transact(func(tx *Store) error {
		err := tx.db.Where("import_id IN ?", ids).Delete(&model.StagingTransaction{}).Error
		if err != nil {
			return fmt.Errorf("deleting staging rows: %w", err)
		}
		err = tx.db.Where("id IN ?", ids).Delete(&model.ImportSession{}).Error
		if err != nil {
			return fmt.Errorf("deleting sessions: %w", err)
		}
		return nil
	})
}

// requireDraft verifies that the session exists and is still editable.
func (s *Store) requireDraft(id string) error {
	sess, err := s.GetSession(id)
	if err != nil {
		return err
	}
	if sess.Status != model.StatusDraft {
		return ErrSessionNotEligible
	}
	return nil
}
