// Package importing drives the staged import workflow: parse statement files
// into a draft session, validate the staged rows, and atomically promote them
// to the ledger.
package importing

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parser"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

// Service provides the import session lifecycle.
type Service struct {
	store    *store.Store
	registry *parser.Registry
	log      zerolog.Logger
}

// NewService creates an import Service.
func NewService(st *store.Store, registry *parser.Registry, log zerolog.Logger) *Service {
	return &Service{store: st, registry: registry, log: log}
}

// Stage parses the given statement files with their parallel bank
// identifiers and inserts the normalized rows under a new draft session.
// Session creation and the bulk insert happen in one transaction. Zero
// parsed rows still creates the session: the bank may be unsupported, or
// the user may want to add rows by hand.
func (s *Service) Stage(paths, banks []string) (string, int, error) {
	rows, err := s.registry.ParseBatch(paths, banks)
	if err != nil {
		return "", 0, err
	}

	var sessionID string
	err = s.store.Transact(func(tx *store.Store) error {
		sess, err := tx.CreateSession()
		if err != nil {
			return err
		}
		sessionID = sess.ID

		staged := make([]model.StagingTransaction, 0, len(rows))
		for _, r := range rows {
			staged = append(staged, model.StagingTransaction{
				ImportID:         sess.ID,
				Date:             r.Date,
				Description:      r.Description,
				CurrencyOriginal: r.CurrencyOriginal,
				AmountOriginal:   decimal.NullDecimal{Decimal: r.AmountOriginal, Valid: true},
				AmountEUR:        r.AmountEUR,
				AccountName:      r.AccountName,
				Notes:            r.Notes,
			})
		}
		return tx.InsertStagingRows(staged)
	})
	if err != nil {
		return "", 0, err
	}

	if len(rows) == 0 {
		s.log.Warn().Str("session", sessionID).Msg("no rows parsed; bank may be unsupported")
	} else {
		s.log.Info().Str("session", sessionID).Int("rows", len(rows)).Msg("staged import")
	}
	return sessionID, len(rows), nil
}

// Commit validates every staging row in the session and atomically promotes
// them to the ledger: the entries are written, the staging rows deleted, and
// the session marked committed in one transaction. A session with no rows is
// a no-op success and remains draft. A concurrent commit on the same session
// loses the status-transition race and fails with ErrSessionNotEligible.
//
// Edits racing the commit are only guarded by that status transition: an
// edit landing after validation has read the rows may be absent from the
// committed batch.
func (s *Service) Commit(sessionID string) error {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return err
	}
	if sess.Status != model.StatusDraft {
		return store.ErrSessionNotEligible
	}

	rows, err := s.store.ListStagingRows(sessionID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.log.Info().Str("session", sessionID).Msg("nothing to commit")
		return nil
	}

	if verrs := ValidateRows(rows); len(verrs) > 0 {
		return &ValidationError{Rows: verrs}
	}

	entries := buildLedgerEntries(rows)
	err = s.store.Transact(func(tx *store.Store) error {
		if err := tx.InsertLedgerEntries(entries); err != nil {
			return err
		}
		if err := tx.PurgeStagingRows(sessionID); err != nil {
			return err
		}
		return tx.MarkCommitted(sessionID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("session", sessionID).Int("entries", len(entries)).Msg("committed import")
	return nil
}

// Delete removes a draft session and its staging rows.
func (s *Service) Delete(sessionID string) error {
	if err := s.store.DeleteDraftSession(sessionID); err != nil {
		return err
	}
	s.log.Info().Str("session", sessionID).Msg("deleted import session")
	return nil
}

// buildLedgerEntries converts validated staging rows to ledger entries.
// AmountEUR falls back to AmountOriginal when no conversion was supplied.
func buildLedgerEntries(rows []model.StagingTransaction) []model.Transaction {
	entries := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		amountEUR := row.AmountOriginal.Decimal
		if row.AmountEUR.Valid {
			amountEUR = row.AmountEUR.Decimal
		}
		entries = append(entries, model.Transaction{
			Date:             *row.Date,
			Description:      strings.TrimSpace(row.Description),
			CurrencyOriginal: row.CurrencyOriginal,
			AmountOriginal:   row.AmountOriginal.Decimal,
			AmountEUR:        amountEUR,
			AccountName:      row.AccountName,
			Category:         row.Category,
			Notes:            row.Notes,
		})
	}
	return entries
}
