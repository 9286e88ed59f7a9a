package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// MonobankParser parses Monobank CSV exports (UTF-8). Rows carry a full
// timestamp; only the calendar date is kept. Operations in currencies other
// than EUR leave amount_eur unset for later user or advisor resolution.
type MonobankParser struct{}

const (
	monobankDateFormat = "02.01.2006 15:04:05"
	monobankColDate    = "Date and time"
	monobankColDesc    = "Description"
	monobankColAmount  = "Operation amount"
	monobankColCcy     = "Operation currency"
)

// Bank returns the bank identifier.
func (p *MonobankParser) Bank() string { return "monobank" }

// Parse reads a Monobank CSV and returns normalized rows. MCC, card-currency
// amount, exchange rate, commission, cashback, and balance columns are dropped.
func (p *MonobankParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading monobank CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	idx := headerIndex(records[0])
	if err := requireColumns(idx, monobankColDate, monobankColDesc, monobankColAmount, monobankColCcy); err != nil {
		return nil, fmt.Errorf("monobank CSV: %w", err)
	}

	var rows []Row
	for _, rec := range records[1:] {
		amount := normalize.PlainAmount(column(rec, idx, monobankColAmount))
		currency := column(rec, idx, monobankColCcy)

		row := Row{
			Description:      column(rec, idx, monobankColDesc),
			CurrencyOriginal: currency,
			AmountOriginal:   amount,
			AccountName:      "Monobank",
		}
		if currency == "EUR" {
			row.AmountEUR = decimal.NullDecimal{Decimal: amount, Valid: true}
		}
		if d, ok := normalize.Date(column(rec, idx, monobankColDate), monobankDateFormat); ok {
			day := d
			row.Date = &day
		}
		rows = append(rows, row)
	}
	return rows, nil
}
