package importing

import (
	"fmt"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// RowError describes one commit-blocking problem on a staging row.
type RowError struct {
	RowID  uint
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.RowID, e.Reason)
}

// ValidationError aggregates every violation found during commit validation.
// The commit is all-or-nothing, so the caller gets the complete list and can
// re-render the editable rows with inline markers.
type ValidationError struct {
	Rows []RowError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Rows))
	for i, re := range e.Rows {
		msgs[i] = re.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateRows checks every staging row for the commit requirements: date
// set, amount_original set, description non-empty after trimming. All
// violations are collected rather than failing fast.
func ValidateRows(rows []model.StagingTransaction) []RowError {
	var errs []RowError
	for _, row := range rows {
		if row.Date == nil {
			errs = append(errs, RowError{RowID: row.ID, Reason: "missing date"})
		}
		if !row.AmountOriginal.Valid {
			errs = append(errs, RowError{RowID: row.ID, Reason: "missing amount"})
		}
		if strings.TrimSpace(row.Description) == "" {
			errs = append(errs, RowError{RowID: row.ID, Reason: "missing description"})
		}
	}
	return errs
}
