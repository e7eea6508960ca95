package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cleared-dev/bilanz/internal/bilanz"
	"github.com/cleared-dev/bilanz/internal/categories"
	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
)

const colWidth = 40

// WriteBilanz prints the balance sheet with Aktiva and Passiva side by side.
func (f *Formatter) WriteBilanz(w io.Writer, b *bilanz.Bilanz) error {
	aktiva := f.sectionLines(b.Aktiva, "TOTAL AKTIVA")
	passiva := f.sectionLines(b.Passiva, "TOTAL PASSIVA")

	var sb strings.Builder
	width := 2*colWidth + 3
	fmt.Fprintln(&sb, rule("=", width))
	fmt.Fprintf(&sb, "BILANZ - %s\n", b.PeriodEnd.Format(time.DateOnly))
	fmt.Fprintln(&sb, rule("=", width))
	fmt.Fprintf(&sb, "%s | %s\n", pad("AKTIVA", colWidth), "PASSIVA")
	fmt.Fprintf(&sb, "%s-+-%s\n", rule("-", colWidth), rule("-", colWidth))

	n := max(len(aktiva), len(passiva))
	for i := 0; i < n; i++ {
		var a, p string
		if i < len(aktiva) {
			a = aktiva[i]
		}
		if i < len(passiva) {
			p = passiva[i]
		}
		fmt.Fprintf(&sb, "%s | %s\n", pad(a, colWidth), strings.TrimRight(p, " "))
	}

	fmt.Fprintln(&sb, rule("=", width))
	if b.IsBalanced() {
		fmt.Fprintln(&sb, "BILANZ IS BALANCED")
	} else {
		fmt.Fprintf(&sb, "BILANZ NOT BALANCED - Difference: %s\n", f.Money(b.Difference()))
	}
	fmt.Fprintln(&sb, rule("=", width))

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *Formatter) sectionLines(s bilanz.Section, totalLabel string) []string {
	var lines []string
	for _, cg := range s.ByCategory {
		lines = append(lines, line(cg.Main.Name, f.Money(cg.Total), colWidth))
		for _, g := range cg.Groups {
			if g.Key != string(cg.Main.Key) {
				lines = append(lines, "  "+g.Label)
			}
			for _, p := range g.Positions {
				lines = append(lines, line("    "+p.Number+" "+p.Name, f.Money(p.Amount), colWidth))
			}
		}
	}
	if len(s.Uncategorized) > 0 {
		lines = append(lines, "Ohne Kategorie")
		for _, p := range s.Uncategorized {
			lines = append(lines, line("    "+p.Number+" "+p.Name, f.Money(p.Amount), colWidth))
		}
	}
	lines = append(lines, "", line(totalLabel, f.Money(s.Total), colWidth))
	return lines
}

// WriteValidation prints the result of a balance check.
func (f *Formatter) WriteValidation(w io.Writer, v bilanz.Validation) error {
	status := "balanced"
	if !v.IsBalanced {
		status = "NOT balanced"
	}
	_, err := fmt.Fprintf(w, "Bilanz per %s is %s\n  Aktiva:     %s\n  Passiva:    %s\n  Difference: %s\n",
		v.PeriodEnd.Format(time.DateOnly), status, f.Money(v.AktivaTotal), f.Money(v.PassivaTotal), f.Money(v.Difference))
	return err
}

// WriteSummary prints a one-block summary of a Bilanz.
func (f *Formatter) WriteSummary(w io.Writer, s bilanz.Summary) error {
	_, err := fmt.Fprintf(w, "Period end: %s\nAccounts:   %d\nAktiva:     %s\nPassiva:    %s\nBalanced:   %t\n",
		s.PeriodEnd.Format(time.DateOnly), s.TotalAccounts, f.Money(s.AktivaTotal), f.Money(s.PassivaTotal), s.IsBalanced)
	return err
}

// WriteResolution prints where an account lands in the Bilanz.
func (f *Formatter) WriteResolution(w io.Writer, r bilanz.Resolution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Account:\t%s %s\n", r.Number, r.Name)
	fmt.Fprintf(tw, "Type:\t%s\n", r.Type.Label())
	fmt.Fprintf(tw, "Soll:\t%s\n", f.Money(r.SollBalance))
	fmt.Fprintf(tw, "Haben:\t%s\n", f.Money(r.HabenBalance))
	fmt.Fprintf(tw, "Balance:\t%s\n", f.Money(r.NetBalance))
	fmt.Fprintf(tw, "Bilanz side:\t%s\n", r.Side)
	if len(r.Path) > 0 {
		names := make([]string, len(r.Path))
		for i, c := range r.Path {
			names[i] = c.Name
		}
		fmt.Fprintf(tw, "Category:\t%s\n", strings.Join(names, " > "))
	} else {
		fmt.Fprintf(tw, "Category:\t%s\n", r.Category)
	}
	fmt.Fprintf(tw, "Contributes:\t%s\n", f.Money(r.Contributes))
	return tw.Flush()
}

// WriteAccounts prints accounts as a table.
func (f *Formatter) WriteAccounts(w io.Writer, accts []model.Account) error {
	if len(accts) == 0 {
		_, err := fmt.Fprintln(w, "No accounts.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Nr.\tName\tTyp\tSoll\tHaben\tSaldo\t")
	for _, a := range accts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			a.Number, a.Name, a.Type.Label(), f.Money(a.SollBalance), f.Money(a.HabenBalance), f.Money(a.Balance()))
	}
	return tw.Flush()
}

// WriteAccount prints one account as a T-account listing of its entries.
func (f *Formatter) WriteAccount(w io.Writer, a model.Account, cats *categories.Map) error {
	fmt.Fprintf(w, "%s %s (%s)\n", a.Number, a.Name, a.Type.Label())
	if a.Category != "" && cats != nil {
		fmt.Fprintf(w, "Category: %s\n", cats.Name(a.Category))
	}
	if a.ParentAccount != "" {
		fmt.Fprintf(w, "Parent:   %s\n", a.ParentAccount)
	}
	fmt.Fprintf(w, "Opened:   %s\n\n", a.CreatedAt.Format(time.DateOnly))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tSide\tAmount\tDescription")
	for _, e := range mergeEntries(a) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp.Format(time.DateOnly), e.side, f.Money(e.Amount), e.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nSoll %s  Haben %s  Saldo %s (%s)\n",
		f.Money(a.SollBalance), f.Money(a.HabenBalance), f.Money(a.Balance()),
		plural(len(a.SollEntries)+len(a.HabenEntries), "entry", "entries"))
	return err
}

type sidedEntry struct {
	model.AccountEntry
	side model.Side
}

// mergeEntries interleaves Soll and Haben entries by timestamp, Soll first on
// ties.
func mergeEntries(a model.Account) []sidedEntry {
	out := make([]sidedEntry, 0, len(a.SollEntries)+len(a.HabenEntries))
	i, j := 0, 0
	for i < len(a.SollEntries) || j < len(a.HabenEntries) {
		if j >= len(a.HabenEntries) || (i < len(a.SollEntries) && !a.HabenEntries[j].Timestamp.Before(a.SollEntries[i].Timestamp)) {
			out = append(out, sidedEntry{a.SollEntries[i], model.Soll})
			i++
			continue
		}
		out = append(out, sidedEntry{a.HabenEntries[j], model.Haben})
		j++
	}
	return out
}

// WritePosting prints the result of a debit or credit.
func (f *Formatter) WritePosting(w io.Writer, r ledger.PostingResult) error {
	verb := "Debited"
	if r.Operation == model.Haben {
		verb = "Credited"
	}
	fmt.Fprintf(w, "%s %s %s %s: new balance %s\n", verb, r.Account, r.Name, f.Money(r.Amount), f.Money(r.NewBalance))
	return WriteNotices(w, r.Notices)
}

// WriteTransaction prints the result of a transfer.
func (f *Formatter) WriteTransaction(w io.Writer, r ledger.TransactionResult) error {
	fmt.Fprintf(w, "Soll %s an Haben %s: %s (%s)\n", r.FromAccount, r.ToAccount, f.Money(r.Amount), r.Description)
	fmt.Fprintf(w, "  %s balance: %s\n  %s balance: %s\n", r.FromAccount, f.Money(r.DebitBalance), r.ToAccount, f.Money(r.CreditBalance))
	return WriteNotices(w, r.Notices)
}

// WriteNotices prints one notice per line.
func WriteNotices(w io.Writer, notices []ledger.Notice) error {
	for _, n := range notices {
		if _, err := fmt.Fprintln(w, n.String()); err != nil {
			return err
		}
	}
	return nil
}
