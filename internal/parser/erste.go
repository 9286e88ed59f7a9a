package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// ErsteParser parses Erste bank CSV exports. The files are UTF-16 encoded
// with European number formatting ("−50,00", "1.234,56") and dd.mm.yyyy
// dates. Erste accounts are EUR-denominated, so amount_eur mirrors the
// original amount.
type ErsteParser struct{}

const (
	ersteDateFormat = "02.01.2006"
	ersteColDate    = "Datum unosa"
	ersteColDesc    = "Opis"
	ersteColAmount  = "Iznos"
	ersteColNotes   = "Bilješka"
)

// Bank returns the bank identifier.
func (p *ErsteParser) Bank() string { return "erste" }

// Parse reads a UTF-16 Erste CSV and returns normalized rows.
func (p *ErsteParser) Parse(r io.Reader) ([]Row, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading erste CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	idx := headerIndex(records[0])
	if err := requireColumns(idx, ersteColDate, ersteColDesc, ersteColAmount); err != nil {
		return nil, fmt.Errorf("erste CSV: %w", err)
	}

	var rows []Row
	for _, rec := range records[1:] {
		amount := normalize.Amount(column(rec, idx, ersteColAmount))

		row := Row{
			Description:      column(rec, idx, ersteColDesc),
			CurrencyOriginal: "EUR",
			AmountOriginal:   amount,
			AmountEUR:        decimal.NullDecimal{Decimal: amount, Valid: true},
			AccountName:      "Erste",
			Notes:            column(rec, idx, ersteColNotes),
		}
		if d, ok := normalize.Date(column(rec, idx, ersteColDate), ersteDateFormat); ok {
			day := d
			row.Date = &day
		}
		rows = append(rows, row)
	}
	return rows, nil
}
