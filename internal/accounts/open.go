package accounts

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
)

// ErrUnknownStandardAccount is returned for a number missing from the catalog.
var ErrUnknownStandardAccount = errors.New("accounts: unknown standard account")

// Ledger is the part of the ledger the catalog helpers need.
type Ledger interface {
	Create(p ledger.CreateParams) (model.Account, error)
	Get(number string) (model.Account, bool)
}

// CreateStandard opens the catalog account number in l with the catalog's
// name and type.
func (s *Service) CreateStandard(l Ledger, number string, initial decimal.Decimal) (model.Account, error) {
	sa, ok := s.Get(number)
	if !ok {
		return model.Account{}, fmt.Errorf("%w: %s", ErrUnknownStandardAccount, number)
	}
	acct, err := l.Create(ledger.CreateParams{
		Number:         sa.Number,
		Name:           sa.Name,
		Type:           sa.Type,
		InitialBalance: initial,
	})
	if err != nil {
		return model.Account{}, fmt.Errorf("creating standard account %s: %w", number, err)
	}
	return acct, nil
}

// StarterFailure records a starter account that could not be opened.
type StarterFailure struct {
	Number string
	Err    error
}

// StarterResult reports the outcome of CreateStarter.
type StarterResult struct {
	Created []model.Account
	Failed  []StarterFailure
}

// CreateStarter opens every starter account. balances optionally supplies
// initial balances by number. A failing account is recorded and the rest are
// still created.
func (s *Service) CreateStarter(l Ledger, balances map[string]decimal.Decimal) StarterResult {
	var res StarterResult
	for _, sa := range s.Starter() {
		acct, err := s.CreateStandard(l, sa.Number, balances[sa.Number])
		if err != nil {
			res.Failed = append(res.Failed, StarterFailure{Number: sa.Number, Err: err})
			continue
		}
		res.Created = append(res.Created, acct)
	}
	return res
}

// Suggestion is a catalog search hit annotated with ledger state.
type Suggestion struct {
	StandardAccount
	AlreadyExists  bool
	CurrentBalance decimal.Decimal
}

// Suggestions searches the catalog and marks which hits are already open in
// l. At most limit results are returned; limit <= 0 means no limit.
func (s *Service) Suggestions(l Ledger, query string, limit int) []Suggestion {
	hits := s.Search(query)
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Suggestion, 0, len(hits))
	for _, h := range hits {
		sg := Suggestion{StandardAccount: h, CurrentBalance: decimal.Zero}
		if acct, ok := l.Get(h.Number); ok {
			sg.AlreadyExists = true
			sg.CurrentBalance = acct.Balance()
		}
		out = append(out, sg)
	}
	return out
}
