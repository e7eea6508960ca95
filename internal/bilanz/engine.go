package bilanz

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/categories"
	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
)

// Source is the read side of a ledger. ListActive must return a consistent
// snapshot.
type Source interface {
	ListActive() []model.Account
	Get(number string) (model.Account, bool)
	Categories() *categories.Map
}

// Engine generates balance sheets from a Source.
type Engine struct {
	src Source
	log *slog.Logger
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock sets the clock used for CreatedAt and the default period end.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an Engine reading from src.
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{src: src, log: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Generate builds a Bilanz from the current ledger state. A zero periodEnd
// means now.
func (e *Engine) Generate(periodEnd time.Time) *Bilanz {
	accounts := e.src.ListActive()
	now := e.now()
	if periodEnd.IsZero() {
		periodEnd = now
	}
	e.log.Info("generating bilanz", "accounts", len(accounts), "period_end", periodEnd.Format(time.DateOnly))
	b := Build(accounts, e.src.Categories(), periodEnd, now)
	if !b.IsBalanced() {
		e.log.Warn("bilanz not balanced", "difference", b.Difference())
	}
	return b
}

// Validate generates a Bilanz and returns its balance check.
func (e *Engine) Validate(periodEnd time.Time) Validation {
	return e.Generate(periodEnd).Validate()
}

// Summary generates a Bilanz and returns its summary.
func (e *Engine) Summary(periodEnd time.Time) Summary {
	return e.Generate(periodEnd).Summary()
}

// UnknownCategory marks a Resolution for an account outside the Bilanz.
const UnknownCategory categories.Key = "unknown"

// Resolution describes where a single account lands in the Bilanz.
type Resolution struct {
	Number       string
	Name         string
	Type         model.AccountType
	SollBalance  decimal.Decimal
	HabenBalance decimal.Decimal
	NetBalance   decimal.Decimal
	Side         categories.Section
	Category     categories.Key
	// Path runs from the main category down to Category. It is empty for
	// Erfolgskonten and uncategorized accounts.
	Path        []categories.Category
	Contributes decimal.Decimal
}

// Resolve reports the Bilanz side, category and contribution of one active
// account. Erfolgskonten resolve to the Unknown side with nothing
// contributed.
func (e *Engine) Resolve(number string) (Resolution, error) {
	acct, ok := e.src.Get(number)
	if !ok {
		return Resolution{}, &ledger.Error{
			Kind:    ledger.ErrAccountNotFound,
			Account: number,
			Detail:  fmt.Sprintf("account %s not found", number),
		}
	}
	return resolve(acct, e.src.Categories()), nil
}

func resolve(acct model.Account, cats *categories.Map) Resolution {
	r := Resolution{
		Number:       acct.Number,
		Name:         acct.Name,
		Type:         acct.Type,
		SollBalance:  acct.SollBalance,
		HabenBalance: acct.HabenBalance,
		NetBalance:   acct.Balance(),
		Side:         categories.Unknown,
		Category:     UnknownCategory,
		Contributes:  decimal.Zero,
	}
	switch acct.Type {
	case model.Aktivkonto:
		r.Side = categories.Aktiva
		r.Contributes = acct.Balance()
	case model.Passivkonto:
		r.Side = categories.Passiva
		r.Contributes = acct.Balance().Abs()
	case model.Aufwandskonto, model.Ertragskonto:
		return r
	}
	if acct.Category != "" {
		r.Category = acct.Category
		if cats != nil {
			r.Path = cats.PathToRoot(acct.Category)
		}
	}
	return r
}
