// Package journal persists ledger mutations as an append-only CSV event log
// and rebuilds a ledger by replaying it.
package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/model"
)

// Op is the kind of ledger mutation an Event records.
type Op string

const (
	OpOpen       Op = "open"
	OpDebit      Op = "debit"
	OpCredit     Op = "credit"
	OpTransfer   Op = "transfer"
	OpRename     Op = "rename"
	OpDeactivate Op = "deactivate"
)

// Event is one journal row. Which fields are set depends on Op:
//
//	open        Account, AccountType, Name, optional Parent and Amount (initial balance)
//	debit       Account, Amount, optional Description
//	credit      Account, Amount, optional Description
//	transfer    Account (debited), CounterAccount (credited), Amount, optional Description
//	rename      Account, Name and/or Parent
//	deactivate  Account
type Event struct {
	ID             string
	Timestamp      time.Time
	Op             Op                `validate:"oneof=open debit credit transfer rename deactivate"`
	Account        string            `validate:"len=4,number"`
	CounterAccount string            `validate:"omitempty,len=4,number"`
	AccountType    model.AccountType `validate:"omitempty,oneof=aktivkonto passivkonto aufwandskonto ertragskonto"`
	Name           string            `validate:"omitempty,min=2,max=100"`
	Parent         string            `validate:"omitempty,len=4,number"`
	Amount         decimal.Decimal   `validate:"-"`
	Description    string
}
