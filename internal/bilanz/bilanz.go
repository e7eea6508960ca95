// Package bilanz projects a ledger snapshot into an HGB balance sheet.
//
// Only Bestandskonten contribute: Aktivkonten on the Aktiva side with their
// balance as-is, Passivkonten on the Passiva side with the absolute value of
// their balance. Erfolgskonten belong to the income statement and are left
// out. A Bilanz is immutable once built and is recomputed on every request.
package bilanz

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/categories"
	"github.com/cleared-dev/bilanz/internal/model"
)

// Position is one account's contribution to a side of the Bilanz.
type Position struct {
	Number   string
	Name     string
	Type     model.AccountType
	Category categories.Key
	Amount   decimal.Decimal
}

// Group is a labelled list of positions with their subtotal.
type Group struct {
	Key       string
	Label     string
	Positions []Position
	Total     decimal.Decimal
}

// CategoryGroup collects the positions below one main category, split into
// one Group per category in tree order.
type CategoryGroup struct {
	Main   categories.Category
	Groups []Group
	Total  decimal.Decimal
}

// Section is the Aktiva or Passiva side.
type Section struct {
	Side       categories.Section
	Positions  []Position // snapshot order
	ByType     []Group
	ByCategory []CategoryGroup
	// Uncategorized holds positions whose category is unknown to the map or
	// belongs to the other side.
	Uncategorized []Position
	Total         decimal.Decimal
}

// Bilanz is a balance sheet derived from one ledger snapshot.
type Bilanz struct {
	PeriodEnd    time.Time
	CreatedAt    time.Time
	AccountCount int
	Aktiva       Section
	Passiva      Section
}

// AktivaTotal is the sum of all Aktiva positions.
func (b *Bilanz) AktivaTotal() decimal.Decimal { return b.Aktiva.Total }

// PassivaTotal is the sum of all Passiva positions.
func (b *Bilanz) PassivaTotal() decimal.Decimal { return b.Passiva.Total }

// Difference is Aktiva minus Passiva.
func (b *Bilanz) Difference() decimal.Decimal {
	return b.Aktiva.Total.Sub(b.Passiva.Total)
}

// IsBalanced reports whether both sides agree to within one cent.
func (b *Bilanz) IsBalanced() bool {
	return b.Difference().Abs().LessThan(model.Epsilon)
}

// Validation is the outcome of a balance check.
type Validation struct {
	IsBalanced   bool
	AktivaTotal  decimal.Decimal
	PassivaTotal decimal.Decimal
	Difference   decimal.Decimal
	PeriodEnd    time.Time
}

// Validate summarizes the balance check.
func (b *Bilanz) Validate() Validation {
	return Validation{
		IsBalanced:   b.IsBalanced(),
		AktivaTotal:  b.AktivaTotal(),
		PassivaTotal: b.PassivaTotal(),
		Difference:   b.Difference(),
		PeriodEnd:    b.PeriodEnd,
	}
}

// Summary is a compact view of a Bilanz.
type Summary struct {
	TotalAccounts int
	AktivaTotal   decimal.Decimal
	PassivaTotal  decimal.Decimal
	IsBalanced    bool
	PeriodEnd     time.Time
}

// Summary returns totals and the number of active accounts in the snapshot,
// including Erfolgskonten.
func (b *Bilanz) Summary() Summary {
	return Summary{
		TotalAccounts: b.AccountCount,
		AktivaTotal:   b.AktivaTotal(),
		PassivaTotal:  b.PassivaTotal(),
		IsBalanced:    b.IsBalanced(),
		PeriodEnd:     b.PeriodEnd,
	}
}

// Build derives a Bilanz from a snapshot of accounts. Inactive accounts are
// skipped. cats may be nil, in which case ByCategory stays empty and every
// position is uncategorized.
func Build(accounts []model.Account, cats *categories.Map, periodEnd, createdAt time.Time) *Bilanz {
	b := &Bilanz{
		PeriodEnd: periodEnd,
		CreatedAt: createdAt,
		Aktiva:    Section{Side: categories.Aktiva, Total: decimal.Zero},
		Passiva:   Section{Side: categories.Passiva, Total: decimal.Zero},
	}
	for i := range accounts {
		acct := &accounts[i]
		if !acct.IsActive {
			continue
		}
		b.AccountCount++
		switch acct.Type {
		case model.Aktivkonto:
			b.Aktiva.Positions = append(b.Aktiva.Positions, position(acct, acct.Balance()))
		case model.Passivkonto:
			b.Passiva.Positions = append(b.Passiva.Positions, position(acct, acct.Balance().Abs()))
		case model.Aufwandskonto, model.Ertragskonto:
		}
	}
	b.Aktiva.group(cats)
	b.Passiva.group(cats)
	return b
}

func position(acct *model.Account, amount decimal.Decimal) Position {
	return Position{
		Number:   acct.Number,
		Name:     acct.Name,
		Type:     acct.Type,
		Category: acct.Category,
		Amount:   amount,
	}
}

func (s *Section) group(cats *categories.Map) {
	byType := map[model.AccountType]int{}
	for _, p := range s.Positions {
		s.Total = s.Total.Add(p.Amount)
		i, ok := byType[p.Type]
		if !ok {
			i = len(s.ByType)
			byType[p.Type] = i
			s.ByType = append(s.ByType, Group{Key: string(p.Type), Label: p.Type.Label(), Total: decimal.Zero})
		}
		s.ByType[i].Positions = append(s.ByType[i].Positions, p)
		s.ByType[i].Total = s.ByType[i].Total.Add(p.Amount)
	}

	if cats == nil {
		s.Uncategorized = append(s.Uncategorized, s.Positions...)
		return
	}

	byCategory := map[categories.Key][]Position{}
	for _, p := range s.Positions {
		if p.Category == "" || !cats.InSection(p.Category, s.Side) {
			s.Uncategorized = append(s.Uncategorized, p)
			continue
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	for _, main := range cats.MainCategories(s.Side) {
		cg := CategoryGroup{Main: main, Total: decimal.Zero}
		for _, c := range subtree(cats, main) {
			ps := byCategory[c.Key]
			if len(ps) == 0 {
				continue
			}
			g := Group{Key: string(c.Key), Label: c.Name, Positions: ps, Total: decimal.Zero}
			for _, p := range ps {
				g.Total = g.Total.Add(p.Amount)
			}
			cg.Groups = append(cg.Groups, g)
			cg.Total = cg.Total.Add(g.Total)
		}
		if len(cg.Groups) > 0 {
			s.ByCategory = append(s.ByCategory, cg)
		}
	}
}

// subtree lists c and its descendants depth-first in sort order.
func subtree(cats *categories.Map, c categories.Category) []categories.Category {
	out := []categories.Category{c}
	for _, child := range cats.ChildrenOf(c.Key) {
		out = append(out, subtree(cats, child)...)
	}
	return out
}
