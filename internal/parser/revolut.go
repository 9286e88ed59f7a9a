package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// RevolutParser parses Revolut CSV exports (UTF-8, dot-decimal amounts).
// The export is already denominated in EUR, so amount_eur is filled directly.
type RevolutParser struct{}

const (
	revolutDateFormat = "2006-01-02 15:04:05"
	revolutColDate    = "Started Date"
	revolutColDesc    = "Description"
	revolutColAmount  = "Amount"
	revolutColCcy     = "Currency"
)

// Bank returns the bank identifier.
func (p *RevolutParser) Bank() string { return "revolut" }

// Parse reads a Revolut CSV and returns normalized rows. Columns like Type,
// Product, Fee, State, and Balance are dropped.
func (p *RevolutParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading revolut CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	idx := headerIndex(records[0])
	if err := requireColumns(idx, revolutColDate, revolutColDesc, revolutColAmount, revolutColCcy); err != nil {
		return nil, fmt.Errorf("revolut CSV: %w", err)
	}

	var rows []Row
	for _, rec := range records[1:] {
		amount := normalize.PlainAmount(column(rec, idx, revolutColAmount))

		row := Row{
			Description:      column(rec, idx, revolutColDesc),
			CurrencyOriginal: column(rec, idx, revolutColCcy),
			AmountOriginal:   amount,
			AmountEUR:        decimal.NullDecimal{Decimal: amount, Valid: true},
			AccountName:      "Revolut",
		}
		if d, ok := normalize.Date(column(rec, idx, revolutColDate), revolutDateFormat); ok {
			day := d
			row.Date = &day
		}
		rows = append(rows, row)
	}
	return rows, nil
}
