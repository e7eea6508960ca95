package ledger

import (
	"fmt"

	"github.com/cleared-dev/bilanz/internal/model"
)

// Level grades a Notice.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
)

// Notice is an advisory message about a posting. Notices never block a
// posting.
type Notice struct {
	Level   Level
	Code    string
	Message string
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Level, n.Message)
}

// Classification names the effect of a transfer on the Bilanz and the
// income statement.
type Classification string

const (
	Aktivtausch         Classification = "aktivtausch"
	Passivtausch        Classification = "passivtausch"
	Bilanzverlaengerung Classification = "bilanzverlaengerung"
	Bilanzverkuerzung   Classification = "bilanzverkuerzung"
	ExpensePayment      Classification = "expense_payment"
	RevenueReceipt      Classification = "revenue_receipt"
	AccruedExpense      Classification = "accrued_expense"
	DeferredRevenue     Classification = "deferred_revenue"
	ExpenseToRevenue    Classification = "expense_to_revenue"
	RevenueToExpense    Classification = "revenue_to_expense"
	OtherTransfer       Classification = "other"
)

// Classify labels a transfer that debits an account of type from and credits
// an account of type to.
func Classify(from, to model.AccountType) Classification {
	switch {
	case from == model.Aktivkonto && to == model.Aktivkonto:
		return Aktivtausch
	case from == model.Passivkonto && to == model.Passivkonto:
		return Passivtausch
	case from == model.Aktivkonto && to == model.Passivkonto:
		return Bilanzverlaengerung
	case from == model.Passivkonto && to == model.Aktivkonto:
		return Bilanzverkuerzung
	case from == model.Aufwandskonto && to == model.Aktivkonto:
		return ExpensePayment
	case from == model.Aktivkonto && to == model.Ertragskonto:
		return RevenueReceipt
	case from == model.Aufwandskonto && to == model.Passivkonto:
		return AccruedExpense
	case from == model.Passivkonto && to == model.Ertragskonto:
		return DeferredRevenue
	case from == model.Aufwandskonto && to == model.Ertragskonto:
		return ExpenseToRevenue
	case from == model.Ertragskonto && to == model.Aufwandskonto:
		return RevenueToExpense
	}
	return OtherTransfer
}

// BilanzNeutral reports whether the classification leaves the Bilanz total
// unchanged.
func (c Classification) BilanzNeutral() bool {
	return c == Aktivtausch || c == Passivtausch
}

// Unusual reports whether the classification deserves a warning.
func (c Classification) Unusual() bool {
	return c == ExpenseToRevenue || c == RevenueToExpense
}

func classificationNotice(c Classification, from, to model.AccountType) Notice {
	n := Notice{Level: LevelInfo, Code: string(c)}
	switch c {
	case Aktivtausch:
		n.Message = "Aktivtausch - Asset transfer between Aktivkonten"
	case Passivtausch:
		n.Message = "Passivtausch - Liability transfer between Passivkonten"
	case Bilanzverlaengerung:
		n.Message = "Bilanzverlängerung - Increasing both assets and liabilities"
	case Bilanzverkuerzung:
		n.Message = "Bilanzverkürzung - Decreasing both assets and liabilities"
	case ExpensePayment:
		n.Message = "Expense payment - Increasing expense, decreasing asset"
	case RevenueReceipt:
		n.Message = "Revenue receipt - Increasing asset, increasing revenue"
	case AccruedExpense:
		n.Message = "Accrued expense - Increasing expense, increasing liability"
	case DeferredRevenue:
		n.Message = "Deferred revenue - Decreasing liability, increasing revenue"
	case ExpenseToRevenue:
		n.Level = LevelWarning
		n.Message = "Direct expense to revenue transfer (unusual)"
	case RevenueToExpense:
		n.Level = LevelWarning
		n.Message = "Direct revenue to expense transfer (unusual)"
	default:
		n.Message = fmt.Sprintf("Transaction between %s and %s", from, to)
	}
	return n
}

// sideNotice reports a single-sided posting that decreases the account's
// balance. It returns false for postings on the natural side.
func sideNotice(acct *model.Account, side model.Side) (Notice, bool) {
	if acct.Type.NaturalSide() == side {
		return Notice{}, false
	}
	verb := "Debiting"
	if side == model.Haben {
		verb = "Crediting"
	}
	return Notice{
		Level:   LevelWarning,
		Code:    "decreasing_" + string(side),
		Message: fmt.Sprintf("%s %s account %s will decrease its balance", verb, acct.Type, acct.Number),
	}, true
}
