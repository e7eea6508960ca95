package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Delimited parses a CSV export with a single header row and fixed column
// positions.
type Delimited struct {
	Name       string
	Comma      rune
	DateLayout string
	// DecimalComma selects German number notation ("-1.234,56").
	DecimalComma bool
	DateCol      int
	// DescCols are joined with a space to form the description.
	DescCols  []int
	AmountCol int
	NumFields int
}

// GermanBank parses the semicolon-separated export most German banks offer:
//
//	Buchungstag;Valuta;Auftraggeber/Empfänger;Verwendungszweck;Betrag;Währung
func GermanBank() *Delimited {
	return &Delimited{
		Name:         "de",
		Comma:        ';',
		DateLayout:   "02.01.2006",
		DecimalComma: true,
		DateCol:      0,
		DescCols:     []int{2, 3},
		AmountCol:    4,
		NumFields:    6,
	}
}

// Plain parses a minimal comma-separated export:
//
//	date,description,amount
func Plain() *Delimited {
	return &Delimited{
		Name:       "plain",
		Comma:      ',',
		DateLayout: time.DateOnly,
		DateCol:    0,
		DescCols:   []int{1},
		AmountCol:  2,
		NumFields:  3,
	}
}

// Format returns the parser name.
func (p *Delimited) Format() string { return p.Name }

// Parse reads the export and returns its rows.
func (p *Delimited) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.Comma
	cr.FieldsPerRecord = p.NumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", p.Name, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []Transaction
	for i, rec := range records[1:] {
		txn, err := p.parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (p *Delimited) parseRow(rec []string) (Transaction, error) {
	date, err := time.Parse(p.DateLayout, strings.TrimSpace(rec[p.DateCol]))
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing date %q: %w", rec[p.DateCol], err)
	}

	raw := strings.TrimSpace(rec[p.AmountCol])
	num := raw
	if p.DecimalComma {
		num = strings.ReplaceAll(num, ".", "")
		num = strings.ReplaceAll(num, ",", ".")
	}
	amount, err := decimal.NewFromString(num)
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing amount %q: %w", raw, err)
	}

	parts := make([]string, 0, len(p.DescCols))
	for _, c := range p.DescCols {
		if s := strings.TrimSpace(rec[c]); s != "" {
			parts = append(parts, s)
		}
	}
	desc := strings.Join(parts, " ")

	return Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   reference(p.Name, date, desc),
	}, nil
}
