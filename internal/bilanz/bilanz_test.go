package bilanz

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bilanz/internal/categories"
	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
)

var (
	fixedNow  = time.Date(2025, 12, 31, 18, 0, 0, 0, time.UTC)
	periodEnd = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func newFixture(t *testing.T) (*ledger.Ledger, *Engine) {
	t.Helper()
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return fixedNow }
	l := ledger.New(ledger.WithLogger(discard), ledger.WithClock(clock))
	return l, NewEngine(l, WithLogger(discard), WithClock(clock))
}

func open(t *testing.T, l *ledger.Ledger, number, name string, typ model.AccountType, balance string) {
	t.Helper()
	p := ledger.CreateParams{Number: number, Name: name, Type: typ}
	if balance != "" {
		p.InitialBalance = dec(balance)
	}
	_, err := l.Create(p)
	require.NoError(t, err)
}

func process(t *testing.T, l *ledger.Ledger, from, to, amount string) {
	t.Helper()
	_, err := l.Process(from, to, dec(amount), "")
	require.NoError(t, err)
}

func TestGenerate_CapitalInjection(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "1000", "Kasse", model.Aktivkonto, "0")
	open(t, l, "3000", "Gezeichnetes Kapital", model.Passivkonto, "0")
	process(t, l, "1000", "3000", "1000")

	b := e.Generate(periodEnd)
	assertDec(t, "1000", b.AktivaTotal())
	assertDec(t, "1000", b.PassivaTotal())
	assert.True(t, b.IsBalanced())
	assert.True(t, b.Difference().IsZero())
	assert.Equal(t, periodEnd, b.PeriodEnd)
	assert.Equal(t, fixedNow, b.CreatedAt)
}

func TestGenerate_DefaultPeriodEnd(t *testing.T) {
	_, e := newFixture(t)
	b := e.Generate(time.Time{})
	assert.Equal(t, fixedNow, b.PeriodEnd)
	assert.True(t, b.IsBalanced(), "an empty ledger is balanced")
	assert.Empty(t, b.Aktiva.Positions)
}

func TestGenerate_ExcludesErfolgskonten(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "1200", "Bank", model.Aktivkonto, "500")
	open(t, l, "3000", "Kapital", model.Passivkonto, "500")
	open(t, l, "6300", "Bürokosten", model.Aufwandskonto, "")
	open(t, l, "8000", "Umsatzerlöse", model.Ertragskonto, "")
	process(t, l, "6300", "1200", "120")
	process(t, l, "1200", "8000", "300")

	b := e.Generate(periodEnd)
	assert.Equal(t, 4, b.AccountCount)
	require.Len(t, b.Aktiva.Positions, 1)
	require.Len(t, b.Passiva.Positions, 1)
	assertDec(t, "680", b.AktivaTotal())
	assertDec(t, "500", b.PassivaTotal())
	assert.False(t, b.IsBalanced(), "the profit is not closed into Eigenkapital")
	assertDec(t, "180", b.Difference())
	assert.Equal(t, 4, b.Summary().TotalAccounts)
}

func TestGenerate_PassivaUsesAbsoluteValue(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "1000", "Kasse", model.Aktivkonto, "")
	open(t, l, "3000", "Kapital", model.Passivkonto, "")
	_, err := l.Debit("3000", dec("75.50"), "")
	require.NoError(t, err)

	b := e.Generate(periodEnd)
	require.Len(t, b.Passiva.Positions, 1)
	assertDec(t, "75.50", b.Passiva.Positions[0].Amount)
	assertDec(t, "75.50", b.PassivaTotal())
}

func TestGenerate_Grouping(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "0200", "Grundstücke", model.Aktivkonto, "10000")
	open(t, l, "1000", "Kasse", model.Aktivkonto, "300")
	open(t, l, "1200", "Bank", model.Aktivkonto, "2700")
	open(t, l, "1400", "Forderungen aLuL", model.Aktivkonto, "1000")
	open(t, l, "3000", "Gezeichnetes Kapital", model.Passivkonto, "12000")
	open(t, l, "3500", "Verbindlichkeiten KI", model.Passivkonto, "2000")

	b := e.Generate(periodEnd)

	require.Len(t, b.Aktiva.ByType, 1)
	assert.Equal(t, string(model.Aktivkonto), b.Aktiva.ByType[0].Key)
	assertDec(t, "14000", b.Aktiva.ByType[0].Total)

	require.Len(t, b.Aktiva.ByCategory, 2)
	anlage, umlauf := b.Aktiva.ByCategory[0], b.Aktiva.ByCategory[1]
	assert.Equal(t, categories.Anlagevermoegen, anlage.Main.Key)
	assertDec(t, "10000", anlage.Total)
	assert.Equal(t, categories.Umlaufvermoegen, umlauf.Main.Key)
	require.Len(t, umlauf.Groups, 2)
	assert.Equal(t, string(categories.Forderungen), umlauf.Groups[0].Key)
	assert.Equal(t, string(categories.LiquideMittel), umlauf.Groups[1].Key)
	assertDec(t, "3000", umlauf.Groups[1].Total)
	assert.Len(t, umlauf.Groups[1].Positions, 2)
	assert.Empty(t, b.Aktiva.Uncategorized)

	require.Len(t, b.Passiva.ByCategory, 2)
	assert.Equal(t, categories.Eigenkapital, b.Passiva.ByCategory[0].Main.Key)
	assert.Equal(t, categories.Fremdkapital, b.Passiva.ByCategory[1].Main.Key)
	assertDec(t, "2000", b.Passiva.ByCategory[1].Total)
	assert.True(t, b.IsBalanced())
}

func TestBuild_WithoutCategories(t *testing.T) {
	accounts := []model.Account{
		{Number: "1000", Name: "Kasse", Type: model.Aktivkonto, SollBalance: dec("10"), HabenBalance: decimal.Zero, IsActive: true},
		{Number: "1200", Name: "Bank", Type: model.Aktivkonto, SollBalance: dec("99"), HabenBalance: decimal.Zero, IsActive: false},
	}
	b := Build(accounts, nil, periodEnd, fixedNow)
	assert.Equal(t, 1, b.AccountCount)
	assert.Empty(t, b.Aktiva.ByCategory)
	assert.Len(t, b.Aktiva.Uncategorized, 1)
	assertDec(t, "10", b.AktivaTotal())
}

func TestGenerate_Idempotent(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "1000", "Kasse", model.Aktivkonto, "250")
	open(t, l, "1200", "Bank", model.Aktivkonto, "750")
	open(t, l, "3000", "Kapital", model.Passivkonto, "1000")
	process(t, l, "1200", "1000", "100")

	first := e.Generate(periodEnd)
	second := e.Generate(periodEnd)
	assert.Equal(t, first, second)
}

func TestIsBalanced_Tolerance(t *testing.T) {
	mk := func(aktiva, passiva string) *Bilanz {
		return &Bilanz{
			Aktiva:  Section{Total: dec(aktiva)},
			Passiva: Section{Total: dec(passiva)},
		}
	}
	assert.True(t, mk("100.00", "100.00").IsBalanced())
	assert.True(t, mk("100.005", "100.00").IsBalanced())
	assert.False(t, mk("100.01", "100.00").IsBalanced())
	assert.False(t, mk("99.99", "100.00").IsBalanced())
}

func TestBalanceProperties(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "1000", "Kasse", model.Aktivkonto, "500")
	open(t, l, "1200", "Bank", model.Aktivkonto, "1500")
	open(t, l, "3000", "Kapital", model.Passivkonto, "1800")
	open(t, l, "3500", "Darlehen", model.Passivkonto, "200")
	require.True(t, e.Generate(periodEnd).IsBalanced())

	// Aktivtausch and Passivtausch keep the sheet balanced and the total fixed.
	for _, tx := range [][3]string{
		{"1000", "1200", "99.99"},
		{"1200", "1000", "0.01"},
		{"3500", "3000", "150"},
		{"3000", "3500", "25.25"},
	} {
		process(t, l, tx[0], tx[1], tx[2])
		b := e.Generate(periodEnd)
		assert.True(t, b.IsBalanced(), "after %v", tx)
		assertDec(t, "2000", b.AktivaTotal(), "after %v", tx)
	}

	// A single cross-side transfer moves both totals by the amount.
	before := e.Generate(periodEnd)
	process(t, l, "1200", "3500", "333.33")
	after := e.Generate(periodEnd)
	assertDec(t, "333.33", after.AktivaTotal().Sub(before.AktivaTotal()))
	assertDec(t, "333.33", after.PassivaTotal().Sub(before.PassivaTotal()))
	assert.True(t, after.IsBalanced())

	process(t, l, "3500", "1000", "33.33")
	shrunk := e.Generate(periodEnd)
	assertDec(t, "2300", shrunk.AktivaTotal())
	assert.True(t, shrunk.IsBalanced())
}

func TestResolve(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "1000", "Kasse", model.Aktivkonto, "400")
	open(t, l, "3700", "Rückstellungen", model.Passivkonto, "400")
	open(t, l, "4000", "Material", model.Aufwandskonto, "")
	process(t, l, "4000", "1000", "40")

	r, err := e.Resolve("1000")
	require.NoError(t, err)
	assert.Equal(t, categories.Aktiva, r.Side)
	assert.Equal(t, categories.LiquideMittel, r.Category)
	require.Len(t, r.Path, 2)
	assert.Equal(t, categories.Umlaufvermoegen, r.Path[0].Key)
	assertDec(t, "360", r.Contributes)
	assertDec(t, "400", r.SollBalance)
	assertDec(t, "40", r.HabenBalance)

	r, err = e.Resolve("3700")
	require.NoError(t, err)
	assert.Equal(t, categories.Passiva, r.Side)
	assert.Equal(t, categories.Rueckstellungen, r.Category)
	assertDec(t, "400", r.Contributes)

	r, err = e.Resolve("4000")
	require.NoError(t, err, "Erfolgskonten resolve without error")
	assert.Equal(t, categories.Unknown, r.Side)
	assert.Equal(t, UnknownCategory, r.Category)
	assert.True(t, r.Contributes.IsZero())
	assertDec(t, "40", r.NetBalance)
	assert.Empty(t, r.Path)

	_, err = e.Resolve("1999")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestResolve_SumsToSectionTotals(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "0400", "Maschinen", model.Aktivkonto, "5000")
	open(t, l, "1000", "Kasse", model.Aktivkonto, "120.40")
	open(t, l, "1200", "Bank", model.Aktivkonto, "-80")
	open(t, l, "3000", "Kapital", model.Passivkonto, "4000")
	open(t, l, "3300", "Verbindlichkeiten", model.Passivkonto, "1040.40")
	open(t, l, "8400", "Erlöse", model.Ertragskonto, "")
	process(t, l, "1000", "8400", "19.99")
	_, err := l.Debit("3300", dec("2000"), "")
	require.NoError(t, err)

	b := e.Generate(periodEnd)
	sums := map[categories.Section]decimal.Decimal{
		categories.Aktiva:  decimal.Zero,
		categories.Passiva: decimal.Zero,
		categories.Unknown: decimal.Zero,
	}
	for _, a := range l.ListActive() {
		r, err := e.Resolve(a.Number)
		require.NoError(t, err)
		sums[r.Side] = sums[r.Side].Add(r.Contributes)
	}
	assert.True(t, b.AktivaTotal().Equal(sums[categories.Aktiva]))
	assert.True(t, b.PassivaTotal().Equal(sums[categories.Passiva]))
	assert.True(t, sums[categories.Unknown].IsZero())
}

func TestValidateAndSummary(t *testing.T) {
	l, e := newFixture(t)
	open(t, l, "1000", "Kasse", model.Aktivkonto, "10")
	open(t, l, "3000", "Kapital", model.Passivkonto, "7.5")

	v := e.Validate(periodEnd)
	assert.False(t, v.IsBalanced)
	assertDec(t, "10", v.AktivaTotal)
	assertDec(t, "7.5", v.PassivaTotal)
	assertDec(t, "2.5", v.Difference)
	assert.Equal(t, periodEnd, v.PeriodEnd)

	s := e.Summary(periodEnd)
	assert.Equal(t, 2, s.TotalAccounts)
	assert.False(t, s.IsBalanced)
}
