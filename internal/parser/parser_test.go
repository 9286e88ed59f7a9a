package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevolutParser_Parse(t *testing.T) {
	f, err := os.Open("testdata/revolut.csv")
	require.NoError(t, err)
	defer f.Close()

	p := &RevolutParser{}
	rows, err := p.Parse(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Konzum Zagreb", rows[0].Description)
	assert.Equal(t, "-12.45", rows[0].AmountOriginal.StringFixed(2))
	assert.Equal(t, "EUR", rows[0].CurrencyOriginal)
	assert.Equal(t, "Revolut", rows[0].AccountName)
	require.NotNil(t, rows[0].Date)
	assert.Equal(t, 2025, rows[0].Date.Year())
	assert.Equal(t, 3, rows[0].Date.Day())

	// Revolut exports are already EUR: amount_eur mirrors the original.
	require.True(t, rows[0].AmountEUR.Valid)
	assert.Equal(t, "-12.45", rows[0].AmountEUR.Decimal.StringFixed(2))

	assert.True(t, rows[2].AmountOriginal.IsPositive())
	assert.Equal(t, "1500.00", rows[2].AmountOriginal.StringFixed(2))
}

func TestRevolutParser_MissingColumns(t *testing.T) {
	p := &RevolutParser{}
	_, err := p.Parse(strings.NewReader("Type,Product\nCARD_PAYMENT,Current\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestErsteParser_Parse(t *testing.T) {
	f, err := os.Open("testdata/erste.csv")
	require.NoError(t, err)
	defer f.Close()

	p := &ErsteParser{}
	rows, err := p.Parse(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Unicode minus and comma decimals normalize to canonical decimals.
	assert.Equal(t, "Konzum", rows[0].Description)
	assert.Equal(t, "-50.00", rows[0].AmountOriginal.StringFixed(2))
	assert.Equal(t, "-1234.56", rows[1].AmountOriginal.StringFixed(2))
	assert.Equal(t, "kolovoz", rows[1].Notes)
	assert.Equal(t, "EUR", rows[0].CurrencyOriginal)
	assert.Equal(t, "Erste", rows[0].AccountName)

	require.NotNil(t, rows[0].Date)
	assert.Equal(t, 31, rows[0].Date.Day())
	assert.Equal(t, 8, int(rows[0].Date.Month()))

	// Malformed date degrades to unset, not an error.
	assert.Nil(t, rows[2].Date)
	assert.Equal(t, "0.12", rows[2].AmountOriginal.StringFixed(2))
}

func TestMonobankParser_Parse(t *testing.T) {
	f, err := os.Open("testdata/monobank.csv")
	require.NoError(t, err)
	defer f.Close()

	p := &MonobankParser{}
	rows, err := p.Parse(f)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// UAH operation: amount_eur stays unset for later resolution.
	assert.Equal(t, "Silpo", rows[0].Description)
	assert.Equal(t, "UAH", rows[0].CurrencyOriginal)
	assert.Equal(t, "-420.50", rows[0].AmountOriginal.StringFixed(2))
	assert.False(t, rows[0].AmountEUR.Valid)
	assert.Equal(t, "Monobank", rows[0].AccountName)
	require.NotNil(t, rows[0].Date)
	assert.Equal(t, 29, rows[0].Date.Day())

	// EUR operation: amount_eur filled directly.
	require.True(t, rows[1].AmountEUR.Valid)
	assert.Equal(t, "-20.00", rows[1].AmountEUR.Decimal.StringFixed(2))
}

func TestParsers_HeaderOnly(t *testing.T) {
	p := &RevolutParser{}
	rows, err := p.Parse(strings.NewReader("Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&RevolutParser{})
	p := r.Get("revolut")
	require.NotNil(t, p)
	assert.Equal(t, "revolut", p.Bank())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ErsteParser{})
	assert.NotNil(t, r.Get("Erste"))
	assert.NotNil(t, r.Get("ERSTE"))
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("revolut"))
	assert.NotNil(t, r.Get("erste"))
	assert.NotNil(t, r.Get("monobank"))
}

func TestParseFile_UnknownBank(t *testing.T) {
	r := DefaultRegistry()
	rows, err := r.ParseFile("testdata/revolut.csv", "acmebank")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseFile_MissingFile(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.ParseFile(filepath.Join(t.TempDir(), "nope.csv"), "revolut")
	require.Error(t, err)
}

func TestParseBatch_PreservesOrder(t *testing.T) {
	r := DefaultRegistry()
	rows, err := r.ParseBatch(
		[]string{"testdata/revolut.csv", "testdata/monobank.csv"},
		[]string{"revolut", "monobank"},
	)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Konzum Zagreb", rows[0].Description)
	assert.Equal(t, "Silpo", rows[3].Description)
}

func TestParseBatch_LengthMismatch(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.ParseBatch([]string{"a.csv", "b.csv"}, []string{"revolut"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bank identifiers")
}
