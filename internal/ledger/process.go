package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/model"
)

// TransactionResult is the outcome of Process.
type TransactionResult struct {
	FromAccount    string
	ToAccount      string
	Amount         decimal.Decimal
	Description    string
	Classification Classification
	DebitBalance   decimal.Decimal // balance of FromAccount after posting
	CreditBalance  decimal.Decimal // balance of ToAccount after posting
	Notices        []Notice
	Timestamp      time.Time
}

// Process books a double-entry transfer: it debits from and credits to with
// the same amount and description. Both accounts and the amount are checked
// before anything is posted, and both postings happen under one lock, so a
// failed transfer changes nothing and readers see either both postings or
// neither.
func (l *Ledger) Process(from, to string, amount decimal.Decimal, description string) (TransactionResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	debitAcct, creditAcct, err := l.transferAccounts(from, to, amount)
	if err != nil {
		return TransactionResult{}, err
	}

	for _, leg := range []struct {
		acct *model.Account
		side model.Side
	}{{debitAcct, model.Soll}, {creditAcct, model.Haben}} {
		if n, ok := sideNotice(leg.acct, leg.side); ok {
			l.log.Debug(n.Message, "from", from, "to", to)
		}
	}

	class := Classify(debitAcct.Type, creditAcct.Type)
	notice := classificationNotice(class, debitAcct.Type, creditAcct.Type)
	if notice.Level == LevelWarning {
		l.log.Warn(notice.Message, "from", from, "to", to)
	} else {
		l.log.Debug(notice.Message, "from", from, "to", to)
	}

	if description == "" {
		description = fmt.Sprintf("Transfer from %s to %s", from, to)
	}

	now := l.now()
	debitAcct.Post(model.Soll, amount, description, now)
	creditAcct.Post(model.Haben, amount, description, now)

	l.log.Info("transaction completed", "from", from, "to", to, "amount", amount, "classification", class)

	return TransactionResult{
		FromAccount:    from,
		ToAccount:      to,
		Amount:         amount,
		Description:    description,
		Classification: class,
		DebitBalance:   debitAcct.Balance(),
		CreditBalance:  creditAcct.Balance(),
		Notices:        []Notice{notice},
		Timestamp:      now,
	}, nil
}

// CheckTransfer returns the error Process would return for the same
// arguments without posting anything.
func (l *Ledger) CheckTransfer(from, to string, amount decimal.Decimal) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, _, err := l.transferAccounts(from, to, amount)
	return err
}

// transferAccounts validates a transfer and returns both accounts. The caller
// holds l.mu.
func (l *Ledger) transferAccounts(from, to string, amount decimal.Decimal) (*model.Account, *model.Account, error) {
	if from == to {
		return nil, nil, &Error{
			Kind:    ErrSameAccountTransfer,
			Field:   "to_account",
			Account: from,
			Detail:  "debit and credit account must differ",
		}
	}
	debitAcct, ok := l.active[from]
	if !ok {
		return nil, nil, &Error{Kind: ErrAccountNotFound, Field: "from_account", Account: from, Detail: fmt.Sprintf("debit account '%s' not found", from)}
	}
	creditAcct, ok := l.active[to]
	if !ok {
		return nil, nil, &Error{Kind: ErrAccountNotFound, Field: "to_account", Account: to, Detail: fmt.Sprintf("credit account '%s' not found", to)}
	}
	if err := validateAmount(amount, from); err != nil {
		return nil, nil, err
	}
	return debitAcct, creditAcct, nil
}
