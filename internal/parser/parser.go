// Package parser turns raw bank statement exports into normalized staging rows.
// Each bank has its own adapter with a fixed column layout, date format, and
// text encoding.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one normalized transaction emitted by a bank adapter. Date is nil
// when the source value did not conform to the bank's date format; AmountEUR
// is set only when the adapter could derive it from the source currency.
type Row struct {
	Date             *time.Time
	Description      string
	CurrencyOriginal string
	AmountOriginal   decimal.Decimal
	AmountEUR        decimal.NullDecimal
	AccountName      string
	Notes            string
}

// Parser converts one bank's statement export into normalized rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Bank() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate bank identifier.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Bank())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser bank: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for a bank identifier, or nil.
func (r *Registry) Get(bank string) Parser {
	return r.parsers[strings.ToLower(bank)]
}

// DefaultRegistry returns a registry with all built-in bank parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&RevolutParser{})
	r.Register(&ErsteParser{})
	r.Register(&MonobankParser{})
	return r
}

// ParseFile parses the statement at path with the adapter registered for
// bank. An unknown bank identifier yields zero rows and no error; callers
// must treat an empty result as a possible "unsupported bank" signal.
func (r *Registry) ParseFile(path, bank string) ([]Row, error) {
	p := r.Get(bank)
	if p == nil {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement %s: %w", path, err)
	}
	defer f.Close()

	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", path, p.Bank(), err)
	}
	return rows, nil
}

// ParseBatch parses multiple files with their parallel bank identifiers,
// preserving per-file row order and concatenating files in submission order.
func (r *Registry) ParseBatch(paths, banks []string) ([]Row, error) {
	if len(paths) != len(banks) {
		return nil, fmt.Errorf("got %d files but %d bank identifiers", len(paths), len(banks))
	}

	var all []Row
	for i, path := range paths {
		rows, err := r.ParseFile(path, banks[i])
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

// headerIndex maps CSV header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

// column returns the value at the named column, or "" when the column is
// absent or the record is short.
func column(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// requireColumns verifies that all named columns are present in the header.
func requireColumns(idx map[string]int, names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
