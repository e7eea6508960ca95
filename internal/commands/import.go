package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bilanz/internal/importer"
	"github.com/cleared-dev/bilanz/internal/journal"
	"github.com/cleared-dev/bilanz/internal/ledger"
)

func newImportCommand(g *globals) *cobra.Command {
	var format, bank, contra, expense, revenue string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Book bank statement rows as transfers",
		Long: `Books every row of a bank statement export as a transfer against the
bank account: receipts as "Bank an Revenue", payments as "Expense an Bank".

Without file arguments all CSV files in import/ are booked and then moved to
import/processed/.

Example:
  bilanz import --bank 1200 --expense 6300 --revenue 8000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if expense == "" {
				expense = contra
			}
			if revenue == "" {
				revenue = contra
			}
			if expense == "" || revenue == "" {
				return fmt.Errorf("--contra or both --expense and --revenue are required")
			}

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (have %s)", format, strings.Join(importer.DefaultRegistry().Formats(), ", "))
			}

			p, err := g.openProject()
			if err != nil {
				return err
			}
			acc := importer.Accounts{Bank: bank, Expense: expense, Revenue: revenue}
			for _, number := range []string{bank, expense, revenue} {
				if _, ok := p.ledger().Get(number); !ok {
					return &ledger.Error{Kind: ledger.ErrAccountNotFound, Account: number}
				}
			}

			scanned := len(args) == 0
			paths := args
			if scanned {
				files, err := importer.Scan(p.root)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
					return err
				}
				for _, f := range files {
					paths = append(paths, f.Path)
				}
			}

			statements, err := importer.ParseFiles(cmd.Context(), parser, paths)
			if err != nil {
				return fmt.Errorf("parsing statements: %w", err)
			}
			plans := make([][]importer.Booking, len(paths))
			for i, path := range paths {
				plans[i] = importer.Plan(statements[i], acc)
				if err := checkBookings(p.ledger(), plans[i]); err != nil {
					return fmt.Errorf("importing %s: %w", filepath.Base(path), err)
				}
			}
			for i, path := range paths {
				name := filepath.Base(path)
				if err := bookStatement(cmd, p, plans[i]); err != nil {
					return fmt.Errorf("importing %s: %w", name, err)
				}
				if scanned {
					if err := importer.MarkProcessed(p.root, name); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s\n", len(plans[i]), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "de", "statement format")
	cmd.Flags().StringVar(&bank, "bank", "1200", "bank account the statement belongs to")
	cmd.Flags().StringVar(&contra, "contra", "", "counter account for both receipts and payments")
	cmd.Flags().StringVar(&expense, "expense", "", "account debited for payments")
	cmd.Flags().StringVar(&revenue, "revenue", "", "account credited for receipts")
	return cmd
}

// checkBookings rejects a statement before anything is journaled when any of
// its bookings would fail, so a retry never books a row twice.
func checkBookings(l *ledger.Ledger, bookings []importer.Booking) error {
	for _, b := range bookings {
		if err := l.CheckTransfer(b.Soll, b.Haben, b.Amount); err != nil {
			return fmt.Errorf("%s: %w", b.Reference, err)
		}
	}
	return nil
}

// bookStatement records the checked bookings of one statement.
func bookStatement(cmd *cobra.Command, p *project, bookings []importer.Booking) error {
	for _, b := range bookings {
		out, err := p.record(cmd.Context(), "import", journal.Event{
			Op:             journal.OpTransfer,
			Account:        b.Soll,
			CounterAccount: b.Haben,
			Amount:         b.Amount,
			Description:    b.Description,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", b.Reference, err)
		}
		for _, n := range out.Notices() {
			if n.Level == ledger.LevelWarning {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", b.Reference, n)
			}
		}
	}
	return nil
}
