// Package ledger is the authoritative in-memory collection of accounts. All
// postings go through a Ledger so that account-number uniqueness, activity and
// the double-entry rule hold.
//
// A Ledger serialises every mutation behind one ledger-wide lock; readers copy
// accounts under the read lock and never observe half of a transfer.
package ledger

import (
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/categories"
	"github.com/cleared-dev/bilanz/internal/model"
)

const (
	openingDescription = "Anfangsbestand"
	defaultDebitDesc   = "Debit transaction"
	defaultCreditDesc  = "Credit transaction"
)

// Ledger holds accounts keyed by number.
type Ledger struct {
	mu         sync.RWMutex
	accounts   []*model.Account          // insertion order, deactivated accounts retained
	active     map[string]*model.Account // active accounts by number
	categories *categories.Map
	log        *slog.Logger
	now        func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(lg *Ledger) { lg.log = l }
}

// WithClock sets the time source for creation and entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) { lg.now = now }
}

// WithCategories replaces the HGB category map used to tag new accounts.
func WithCategories(m *categories.Map) Option {
	return func(lg *Ledger) { lg.categories = m }
}

// New creates an empty Ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		active:     make(map[string]*model.Account),
		categories: categories.HGB(),
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Categories returns the category map used by the ledger.
func (l *Ledger) Categories() *categories.Map {
	return l.categories
}

// Create opens a new account. A non-zero initial balance is posted as an
// opening entry on the side that matches its sign: the natural side for a
// positive balance, the opposite side (as absolute value) for a negative one.
func (l *Ledger) Create(p CreateParams) (model.Account, error) {
	if err := validateCreate(&p); err != nil {
		l.log.Debug("rejected account", "number", p.Number, "error", err)
		return model.Account{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.active[p.Number]; exists {
		l.log.Error("account already exists", "number", p.Number)
		return model.Account{}, &Error{
			Kind:    ErrDuplicateAccount,
			Field:   "number",
			Account: p.Number,
			Detail:  "account with number '" + p.Number + "' already exists",
		}
	}

	now := l.now()
	acct := &model.Account{
		Number:        p.Number,
		Name:          p.Name,
		Type:          p.Type,
		SollBalance:   decimal.Zero,
		HabenBalance:  decimal.Zero,
		ParentAccount: p.ParentAccount,
		IsActive:      true,
		CreatedAt:     now,
	}
	if cat, ok := l.categories.CategoryFor(p.Number); ok && p.Type.IsBestandskonto() {
		acct.Category = cat
	}

	switch side := p.Type.NaturalSide(); {
	case p.InitialBalance.IsPositive():
		acct.Post(side, p.InitialBalance, openingDescription, now)
	case p.InitialBalance.IsNegative():
		acct.Post(side.Opposite(), p.InitialBalance.Abs(), openingDescription, now)
	}

	l.accounts = append(l.accounts, acct)
	l.active[acct.Number] = acct
	l.log.Debug("account created", "number", acct.Number, "type", acct.Type, "category", acct.Category, "balance", acct.Balance())
	return acct.Clone(), nil
}

// Get returns a copy of the active account with the given number.
func (l *Ledger) Get(number string) (model.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.active[number]
	if !ok {
		return model.Account{}, false
	}
	return acct.Clone(), true
}

// ListActive returns copies of all active accounts in insertion order. The
// copies form a consistent snapshot.
func (l *Ledger) ListActive() []model.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Account, 0, len(l.active))
	for _, acct := range l.accounts {
		if acct.IsActive {
			out = append(out, acct.Clone())
		}
	}
	return out
}

// Count returns the number of active accounts.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.active)
}

// Balance returns the signed balance of an active account.
func (l *Ledger) Balance(number string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acct, ok := l.active[number]
	if !ok {
		return decimal.Zero, notFound(number)
	}
	return acct.Balance(), nil
}

// PostingResult describes the outcome of a single-sided posting.
type PostingResult struct {
	Account     string
	Name        string
	Type        model.AccountType
	Operation   model.Side
	Amount      decimal.Decimal
	Description string
	NewBalance  decimal.Decimal
	Notices     []Notice
}

// Debit posts amount to the Soll side of an account.
func (l *Ledger) Debit(number string, amount decimal.Decimal, description string) (PostingResult, error) {
	if description == "" {
		description = defaultDebitDesc
	}
	return l.post(number, model.Soll, amount, description)
}

// Credit posts amount to the Haben side of an account.
func (l *Ledger) Credit(number string, amount decimal.Decimal, description string) (PostingResult, error) {
	if description == "" {
		description = defaultCreditDesc
	}
	return l.post(number, model.Haben, amount, description)
}

func (l *Ledger) post(number string, side model.Side, amount decimal.Decimal, description string) (PostingResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.active[number]
	if !ok {
		l.log.Error("account not found", "number", number)
		return PostingResult{}, notFound(number)
	}
	if err := validateAmount(amount, number); err != nil {
		return PostingResult{}, err
	}

	var notices []Notice
	if n, ok := sideNotice(acct, side); ok {
		l.log.Warn(n.Message)
		notices = append(notices, n)
	}

	acct.Post(side, amount, description, l.now())
	l.log.Debug("account posted", "number", number, "side", side, "amount", amount, "balance", acct.Balance())

	return PostingResult{
		Account:     acct.Number,
		Name:        acct.Name,
		Type:        acct.Type,
		Operation:   side,
		Amount:      amount,
		Description: description,
		NewBalance:  acct.Balance(),
		Notices:     notices,
	}, nil
}

// Update changes the name and/or parent of an active account. The account
// type is fixed at creation because it determines the SKR number range.
func (l *Ledger) Update(number string, p UpdateParams) (model.Account, error) {
	var name, parent string
	var err error
	if p.Name != nil {
		if name, err = validateName(*p.Name, number); err != nil {
			return model.Account{}, err
		}
	}
	if p.ParentAccount != nil {
		if parent, err = validateParent(*p.ParentAccount, number); err != nil {
			return model.Account{}, err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.active[number]
	if !ok {
		return model.Account{}, notFound(number)
	}
	if p.Name != nil {
		acct.Name = name
	}
	if p.ParentAccount != nil {
		acct.ParentAccount = parent
	}
	l.log.Debug("account updated", "number", number)
	return acct.Clone(), nil
}

// Deactivate soft-deletes an account. Its record and entries are retained but
// it is treated as absent afterwards, so the number may be reused.
func (l *Ledger) Deactivate(number string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.active[number]
	if !ok {
		return notFound(number)
	}
	acct.IsActive = false
	delete(l.active, number)
	l.log.Info("account deactivated", "number", number, "balance", acct.Balance())
	return nil
}
