package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseStatement(t *testing.T) []Transaction {
	t.Helper()
	f, err := os.Open("../../testdata/bank_de.csv")
	require.NoError(t, err)
	defer f.Close()

	txns, err := GermanBank().Parse(f)
	require.NoError(t, err)
	return txns
}

func TestGermanBank_Parse(t *testing.T) {
	txns := parseStatement(t)
	require.Len(t, txns, 6)

	assert.Equal(t, "GITHUB PRO SUBSCRIPTION", txns[0].Description)
	assert.Equal(t, "-4.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), txns[0].Date)

	assert.Equal(t, "ACME Beratung Rechnung 1042", txns[2].Description)
	assert.Equal(t, "3500.00", txns[2].Amount.StringFixed(2))

	assert.Equal(t, 22, txns[5].Date.Day())
}

func TestGermanBank_Signs(t *testing.T) {
	for _, txn := range parseStatement(t) {
		if strings.HasPrefix(txn.Description, "ACME") {
			assert.True(t, txn.Amount.IsPositive())
		} else {
			assert.True(t, txn.Amount.IsNegative(), "expected negative for %s", txn.Description)
		}
	}
}

func TestGermanBank_Reference(t *testing.T) {
	assert.Equal(t, "de_20250103_GITHUBPROS", parseStatement(t)[0].Reference)
}

func TestDelimited_Errors(t *testing.T) {
	header := "Buchungstag;Valuta;Auftraggeber/Empfänger;Verwendungszweck;Betrag;Währung\n"
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad date", header + "2025-01-03;;X;Y;-4,00;EUR\n", "parsing date"},
		{"bad amount", header + "03.01.2025;;X;Y;vier;EUR\n", "parsing amount"},
		{"wrong field count", header + "03.01.2025;X;-4,00\n", "reading de CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GermanBank().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDelimited_EmptyFile(t *testing.T) {
	txns, err := Plain().Parse(strings.NewReader("date,description,amount\n"))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestPlain_Parse(t *testing.T) {
	txns, err := Plain().Parse(strings.NewReader("date,description,amount\n2025-02-01,Miete Februar,-800.00\n"))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "-800.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "plain_20250201_MieteFebru", txns[0].Reference)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("de"))

	r.Register(GermanBank())
	assert.NotNil(t, r.Get("DE"))
	assert.Panics(t, func() { r.Register(GermanBank()) })

	assert.Equal(t, []string{"de", "plain"}, DefaultRegistry().Formats())
}

func TestPlan(t *testing.T) {
	acc := Accounts{Bank: "1200", Expense: "6300", Revenue: "8000"}
	txns := []Transaction{
		{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Description: "GITHUB", Amount: decimal.RequireFromString("-4.00")},
		{Date: time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), Description: "Storno", Amount: decimal.Zero},
		{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Description: "ACME", Amount: decimal.RequireFromString("3500")},
	}

	got := Plan(txns, acc)
	require.Len(t, got, 2)

	assert.Equal(t, "6300", got[0].Soll)
	assert.Equal(t, "1200", got[0].Haben)
	assert.Equal(t, "4.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "2025-01-03 GITHUB", got[0].Description)

	assert.Equal(t, "1200", got[1].Soll)
	assert.Equal(t, "8000", got[1].Haben)
	assert.Equal(t, "3500.00", got[1].Amount.StringFixed(2))
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, Dir)
	require.NoError(t, os.MkdirAll(filepath.Join(importDir, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.CSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "processed", "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "bank.CSV", files[0].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_NoDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, Dir)
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "bank.csv"))

	assert.NoFileExists(t, filepath.Join(importDir, "bank.csv"))
	assert.FileExists(t, filepath.Join(dir, ProcessedDir, "bank.csv"))
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.csv")
	other := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(good, []byte("date,description,amount\n2025-02-01,Miete,-800.00\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("date,description,amount\n2025-02-03,Kunde,120.00\n2025-02-04,Bank,-5.00\n"), 0o644))

	got, err := ParseFiles(context.Background(), Plain(), []string{good, other})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0], 1)
	assert.Len(t, got[1], 2)

	bad := filepath.Join(dir, "c.csv")
	require.NoError(t, os.WriteFile(bad, []byte("date,description,amount\ngestern,X,1\n"), 0o644))
	_, err = ParseFiles(context.Background(), Plain(), []string{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.csv")

	_, err = ParseFiles(context.Background(), Plain(), []string{filepath.Join(dir, "missing.csv")})
	require.Error(t, err)
}
