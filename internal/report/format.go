// Package report renders ledger state and balance sheets for the terminal and
// as JSON.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when the project does not configure one.
const DefaultLocale = "de-DE"

// Formatter formats amounts and dates for one locale.
type Formatter struct {
	p       *message.Printer
	symbol  string
	decimal string // locale decimal separator
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "de-DE". An
// unparseable locale falls back to DefaultLocale.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	p := message.NewPrinter(tag)
	return &Formatter{p: p, symbol: "€", decimal: strings.Trim(p.Sprintf("%.1f", 1.5), "15")}
}

// Money formats an amount with two decimals, locale grouping and the euro
// sign, e.g. "1.234,50 €" in German.
func (f *Formatter) Money(d decimal.Decimal) string {
	r := d.Round(2)
	units, cents, _ := strings.Cut(r.Abs().StringFixed(2), ".")
	if n, err := strconv.ParseInt(units, 10, 64); err == nil {
		units = f.p.Sprintf("%d", n)
	}
	sign := ""
	if r.IsNegative() {
		sign = "-"
	}
	return sign + units + f.decimal + cents + " " + f.symbol
}

// pad right-pads s with spaces to width runes, cutting it with an ellipsis
// when it is longer.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-n)
}

// line joins a label and an amount so the amount ends at width.
func line(label, amount string, width int) string {
	gap := width - utf8.RuneCountInString(amount) - 1
	if gap < 1 {
		return pad(label+" "+amount, width)
	}
	return pad(label, gap) + " " + amount
}

func rule(ch string, width int) string {
	return strings.Repeat(ch, width)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
