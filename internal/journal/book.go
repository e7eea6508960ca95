package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
)

// Book is a ledger driven by journal events. The ledger's clock reports the
// timestamp of the event being applied, so replayed entries keep their
// original timestamps.
type Book struct {
	Ledger *ledger.Ledger
	at     time.Time
}

// NewBook returns a Book over a fresh ledger. Any clock in opts is
// overridden.
func NewBook(opts ...ledger.Option) *Book {
	b := &Book{}
	opts = append(opts, ledger.WithClock(func() time.Time { return b.at }))
	b.Ledger = ledger.New(opts...)
	return b
}

// Outcome is what applying an event produced. Exactly one field is set for
// open, rename, debit, credit and transfer; none for deactivate.
type Outcome struct {
	Account     *model.Account
	Posting     *ledger.PostingResult
	Transaction *ledger.TransactionResult
}

// Notices returns the notices of a posting or transfer.
func (o Outcome) Notices() []ledger.Notice {
	switch {
	case o.Posting != nil:
		return o.Posting.Notices
	case o.Transaction != nil:
		return o.Transaction.Notices
	}
	return nil
}

// Apply performs ev on the ledger. Book is not safe for concurrent Apply
// calls.
func (b *Book) Apply(ev Event) (Outcome, error) {
	b.at = ev.Timestamp
	l := b.Ledger

	switch ev.Op {
	case OpOpen:
		acct, err := l.Create(ledger.CreateParams{
			Number:         ev.Account,
			Name:           ev.Name,
			Type:           ev.AccountType,
			InitialBalance: ev.Amount,
			ParentAccount:  ev.Parent,
		})
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Account: &acct}, nil
	case OpDebit:
		res, err := l.Debit(ev.Account, ev.Amount, ev.Description)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Posting: &res}, nil
	case OpCredit:
		res, err := l.Credit(ev.Account, ev.Amount, ev.Description)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Posting: &res}, nil
	case OpTransfer:
		res, err := l.Process(ev.Account, ev.CounterAccount, ev.Amount, ev.Description)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Transaction: &res}, nil
	case OpRename:
		var p ledger.UpdateParams
		if ev.Name != "" {
			p.Name = &ev.Name
		}
		if ev.Parent != "" {
			p.ParentAccount = &ev.Parent
		}
		acct, err := l.Update(ev.Account, p)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Account: &acct}, nil
	case OpDeactivate:
		return Outcome{}, l.Deactivate(ev.Account)
	}
	return Outcome{}, fmt.Errorf("unknown op %q", ev.Op)
}

// Replay validates events and applies them in order to a new Book. The first
// failing event aborts the replay.
func Replay(events []Event, opts ...ledger.Option) (*Book, error) {
	if verrs := ValidateEvents(events); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("invalid journal: %s", strings.Join(msgs, "; "))
	}

	b := NewBook(opts...)
	for _, ev := range events {
		if _, err := b.Apply(ev); err != nil {
			return nil, fmt.Errorf("replaying event %s: %w", ev.ID, err)
		}
	}
	return b, nil
}
