// Package importer reads bank statement exports and turns their rows into
// transfers against a bank account.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Transaction is one row of a bank statement. A positive Amount is money
// received, a negative Amount money paid.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
}

// Parser converts a bank CSV file into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names in order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(GermanBank())
	r.Register(Plain())
	return r
}

// Dir is the subdirectory for statements waiting to be imported.
const Dir = "import"

// ProcessedDir receives imported statements.
const ProcessedDir = "import/processed"

// Scan returns CSV files in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, Dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, Dir, fileName)
	dstDir := filepath.Join(repoRoot, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Accounts names the ledger accounts a statement is booked against.
type Accounts struct {
	Bank    string // the account the statement belongs to
	Expense string // debited for payments
	Revenue string // credited for receipts
}

// Booking is a transfer derived from a statement row: Soll is debited and
// Haben credited with Amount.
type Booking struct {
	Soll        string
	Haben       string
	Amount      decimal.Decimal
	Description string
	Reference   string
}

// Plan turns statement rows into bookings in statement order. Receipts are
// booked "Bank an Revenue", payments "Expense an Bank". Zero-amount rows are
// skipped.
func Plan(txns []Transaction, acc Accounts) []Booking {
	out := make([]Booking, 0, len(txns))
	for _, t := range txns {
		b := Booking{
			Amount:      t.Amount.Abs(),
			Description: t.Date.Format(time.DateOnly) + " " + t.Description,
			Reference:   t.Reference,
		}
		switch {
		case t.Amount.IsPositive():
			b.Soll, b.Haben = acc.Bank, acc.Revenue
		case t.Amount.IsNegative():
			b.Soll, b.Haben = acc.Expense, acc.Bank
		default:
			continue
		}
		out = append(out, b)
	}
	return out
}

// reference builds an identifier like de_20250103_GITHUBPROS from a row's
// date and the first alphanumerics of its description.
func reference(format string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", format, date.Format("20060102"), prefix)
}

// ParseFiles parses every file with p concurrently. The result is indexed
// like paths. The first failure cancels the rest and is returned.
func ParseFiles(ctx context.Context, p Parser, paths []string) ([][]Transaction, error) {
	out := make([][]Transaction, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			txns, err := p.Parse(f)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			out[i] = txns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
