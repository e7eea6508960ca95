package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/categories"
)

// AccountType is one of the four fundamental HGB account types.
type AccountType string

const (
	Aktivkonto    AccountType = "aktivkonto"    // asset (Bestandskonto)
	Passivkonto   AccountType = "passivkonto"   // liability or equity (Bestandskonto)
	Aufwandskonto AccountType = "aufwandskonto" // expense (Erfolgskonto)
	Ertragskonto  AccountType = "ertragskonto"  // revenue (Erfolgskonto)
)

// AccountTypes lists every account type in SKR number order.
var AccountTypes = []AccountType{Aktivkonto, Passivkonto, Aufwandskonto, Ertragskonto}

// Side is one side of a T-account.
type Side string

const (
	Soll  Side = "soll"
	Haben Side = "haben"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Soll {
		return Haben
	}
	return Soll
}

// ParseAccountType converts a string to an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

// Valid reports whether t is one of the four known types.
func (t AccountType) Valid() bool {
	switch t {
	case Aktivkonto, Passivkonto, Aufwandskonto, Ertragskonto:
		return true
	}
	return false
}

// NaturalSide returns the side on which postings increase the balance.
// Every account type must be listed here; an unknown type is a programming
// error because the Ledger only admits validated types.
func (t AccountType) NaturalSide() Side {
	switch t {
	case Aktivkonto, Aufwandskonto:
		return Soll
	case Passivkonto, Ertragskonto:
		return Haben
	default:
		panic(fmt.Sprintf("model: unhandled account type %q", string(t)))
	}
}

// NumberRange returns the inclusive SKR number range for the type.
func (t AccountType) NumberRange() (lo, hi string) {
	switch t {
	case Aktivkonto:
		return "0000", "2999"
	case Passivkonto:
		return "3000", "3999"
	case Aufwandskonto:
		return "4000", "7999"
	case Ertragskonto:
		return "8000", "9999"
	default:
		panic(fmt.Sprintf("model: unhandled account type %q", string(t)))
	}
}

// InRange reports whether number lies in the type's SKR range.
func (t AccountType) InRange(number string) bool {
	lo, hi := t.NumberRange()
	return lo <= number && number <= hi
}

// IsBestandskonto reports whether the type appears on the Bilanz.
func (t AccountType) IsBestandskonto() bool {
	return t == Aktivkonto || t == Passivkonto
}

// Label returns the German display name of the type.
func (t AccountType) Label() string {
	switch t {
	case Aktivkonto:
		return "Aktivkonto"
	case Passivkonto:
		return "Passivkonto"
	case Aufwandskonto:
		return "Aufwandskonto"
	case Ertragskonto:
		return "Ertragskonto"
	}
	return string(t)
}

// Account is a single ledger account with running Soll and Haben totals.
type Account struct {
	Number        string
	Name          string
	Type          AccountType
	Category      categories.Key // empty for numbers outside the Bilanz tree
	SollBalance   decimal.Decimal
	HabenBalance  decimal.Decimal
	ParentAccount string // account number, empty = top-level
	IsActive      bool
	CreatedAt     time.Time
	SollEntries   []AccountEntry
	HabenEntries  []AccountEntry
}

// Debit records amount on the Soll side.
func (a *Account) Debit(amount decimal.Decimal, description string, at time.Time) {
	a.SollBalance = a.SollBalance.Add(amount)
	a.SollEntries = append(a.SollEntries, AccountEntry{Amount: amount, Description: description, Timestamp: at})
}

// Credit records amount on the Haben side.
func (a *Account) Credit(amount decimal.Decimal, description string, at time.Time) {
	a.HabenBalance = a.HabenBalance.Add(amount)
	a.HabenEntries = append(a.HabenEntries, AccountEntry{Amount: amount, Description: description, Timestamp: at})
}

// Post records amount on the given side.
func (a *Account) Post(side Side, amount decimal.Decimal, description string, at time.Time) {
	if side == Soll {
		a.Debit(amount, description, at)
		return
	}
	a.Credit(amount, description, at)
}

// Balance returns the signed balance under German accounting rules:
// Soll - Haben for Aktiv- and Aufwandskonten, Haben - Soll for Passiv- and
// Ertragskonten.
func (a *Account) Balance() decimal.Decimal {
	if a.Type.NaturalSide() == Soll {
		return a.SollBalance.Sub(a.HabenBalance)
	}
	return a.HabenBalance.Sub(a.SollBalance)
}

// HasCategory reports whether the account resolves into the category tree.
func (a *Account) HasCategory() bool {
	return a.Category != ""
}

// Clone returns a deep copy that shares no entry slices with a.
func (a *Account) Clone() Account {
	c := *a
	c.SollEntries = append([]AccountEntry(nil), a.SollEntries...)
	c.HabenEntries = append([]AccountEntry(nil), a.HabenEntries...)
	return c
}
