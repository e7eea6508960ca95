package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/bilanz"
	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
)

// Amounts are rendered as fixed two-decimal strings to keep them exact.
func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// PositionJSON is one account line in a Bilanz.
type PositionJSON struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	Category      string `json:"category,omitempty"`
	Balance       string `json:"balance"`
}

// GroupJSON is a category group with its positions.
type GroupJSON struct {
	Key       string         `json:"key"`
	Name      string         `json:"name"`
	Total     string         `json:"total"`
	Positions []PositionJSON `json:"positions"`
}

// CategoryJSON is a main category of one side.
type CategoryJSON struct {
	Key    string      `json:"key"`
	Name   string      `json:"name"`
	Total  string      `json:"total"`
	Groups []GroupJSON `json:"groups"`
}

// SideJSON is the Aktiva or Passiva side.
type SideJSON struct {
	Positions     map[string][]PositionJSON `json:"positions"`
	Categories    []CategoryJSON            `json:"categories"`
	Uncategorized []PositionJSON            `json:"uncategorized,omitempty"`
	Total         string                    `json:"total"`
}

// BilanzJSON is the serialized form of a Bilanz.
type BilanzJSON struct {
	PeriodEnd         time.Time `json:"period_end"`
	CreatedAt         time.Time `json:"created_at"`
	Aktiva            SideJSON  `json:"aktiva"`
	Passiva           SideJSON  `json:"passiva"`
	IsBalanced        bool      `json:"is_balanced"`
	BalanceDifference string    `json:"balance_difference"`
}

// NewBilanzJSON converts a Bilanz. Positions are keyed by account type.
func NewBilanzJSON(b *bilanz.Bilanz) BilanzJSON {
	return BilanzJSON{
		PeriodEnd:         b.PeriodEnd,
		CreatedAt:         b.CreatedAt,
		Aktiva:            sideJSON(b.Aktiva),
		Passiva:           sideJSON(b.Passiva),
		IsBalanced:        b.IsBalanced(),
		BalanceDifference: amount(b.Difference()),
	}
}

func sideJSON(s bilanz.Section) SideJSON {
	out := SideJSON{
		Positions:  map[string][]PositionJSON{},
		Categories: []CategoryJSON{},
		Total:      amount(s.Total),
	}
	for _, g := range s.ByType {
		out.Positions[g.Key] = positionsJSON(g.Positions)
	}
	for _, cg := range s.ByCategory {
		c := CategoryJSON{Key: string(cg.Main.Key), Name: cg.Main.Name, Total: amount(cg.Total)}
		for _, g := range cg.Groups {
			c.Groups = append(c.Groups, GroupJSON{Key: g.Key, Name: g.Label, Total: amount(g.Total), Positions: positionsJSON(g.Positions)})
		}
		out.Categories = append(out.Categories, c)
	}
	if len(s.Uncategorized) > 0 {
		out.Uncategorized = positionsJSON(s.Uncategorized)
	}
	return out
}

func positionsJSON(ps []bilanz.Position) []PositionJSON {
	out := make([]PositionJSON, len(ps))
	for i, p := range ps {
		out[i] = PositionJSON{AccountNumber: p.Number, AccountName: p.Name, Category: string(p.Category), Balance: amount(p.Amount)}
	}
	return out
}

// ValidationJSON is the serialized balance check.
type ValidationJSON struct {
	IsBalanced   bool      `json:"is_balanced"`
	AktivaTotal  string    `json:"aktiva_total"`
	PassivaTotal string    `json:"passiva_total"`
	Difference   string    `json:"difference"`
	PeriodEnd    time.Time `json:"period_end"`
}

// NewValidationJSON converts a Validation.
func NewValidationJSON(v bilanz.Validation) ValidationJSON {
	return ValidationJSON{
		IsBalanced:   v.IsBalanced,
		AktivaTotal:  amount(v.AktivaTotal),
		PassivaTotal: amount(v.PassivaTotal),
		Difference:   amount(v.Difference),
		PeriodEnd:    v.PeriodEnd,
	}
}

// SummaryJSON is the serialized Bilanz summary.
type SummaryJSON struct {
	TotalAccounts int       `json:"total_accounts"`
	AktivaTotal   string    `json:"aktiva_total"`
	PassivaTotal  string    `json:"passiva_total"`
	IsBalanced    bool      `json:"is_balanced"`
	PeriodEnd     time.Time `json:"period_end"`
}

// NewSummaryJSON converts a Summary.
func NewSummaryJSON(s bilanz.Summary) SummaryJSON {
	return SummaryJSON{
		TotalAccounts: s.TotalAccounts,
		AktivaTotal:   amount(s.AktivaTotal),
		PassivaTotal:  amount(s.PassivaTotal),
		IsBalanced:    s.IsBalanced,
		PeriodEnd:     s.PeriodEnd,
	}
}

// ResolutionJSON is the serialized account resolution.
type ResolutionJSON struct {
	AccountNumber     string `json:"account_number"`
	AccountName       string `json:"account_name"`
	AccountType       string `json:"account_type"`
	SollBalance       string `json:"soll_balance"`
	HabenBalance      string `json:"haben_balance"`
	NetBalance        string `json:"net_balance"`
	BilanzSide        string `json:"bilanz_side"`
	BilanzCategory    string `json:"bilanz_category"`
	ContributesAmount string `json:"contributes_amount"`
}

// NewResolutionJSON converts a Resolution.
func NewResolutionJSON(r bilanz.Resolution) ResolutionJSON {
	return ResolutionJSON{
		AccountNumber:     r.Number,
		AccountName:       r.Name,
		AccountType:       string(r.Type),
		SollBalance:       amount(r.SollBalance),
		HabenBalance:      amount(r.HabenBalance),
		NetBalance:        amount(r.NetBalance),
		BilanzSide:        string(r.Side),
		BilanzCategory:    string(r.Category),
		ContributesAmount: amount(r.Contributes),
	}
}

// AccountJSON is the serialized form of an account without its entries.
type AccountJSON struct {
	Number        string    `json:"number"`
	Name          string    `json:"name"`
	AccountType   string    `json:"account_type"`
	Category      string    `json:"category,omitempty"`
	SollBalance   string    `json:"soll_balance"`
	HabenBalance  string    `json:"haben_balance"`
	Balance       string    `json:"balance"`
	ParentAccount string    `json:"parent_account,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAccountJSON converts an account.
func NewAccountJSON(a model.Account) AccountJSON {
	return AccountJSON{
		Number:        a.Number,
		Name:          a.Name,
		AccountType:   string(a.Type),
		Category:      string(a.Category),
		SollBalance:   amount(a.SollBalance),
		HabenBalance:  amount(a.HabenBalance),
		Balance:       amount(a.Balance()),
		ParentAccount: a.ParentAccount,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}

// PostingJSON is the serialized result of a debit or credit.
type PostingJSON struct {
	AccountNumber string   `json:"account_number"`
	AccountName   string   `json:"account_name"`
	AccountType   string   `json:"account_type"`
	Operation     string   `json:"operation"`
	Amount        string   `json:"amount"`
	Description   string   `json:"description"`
	NewBalance    string   `json:"new_balance"`
	Notices       []string `json:"validation_messages"`
}

// NewPostingJSON converts a PostingResult.
func NewPostingJSON(r ledger.PostingResult) PostingJSON {
	return PostingJSON{
		AccountNumber: r.Account,
		AccountName:   r.Name,
		AccountType:   string(r.Type),
		Operation:     string(r.Operation),
		Amount:        amount(r.Amount),
		Description:   r.Description,
		NewBalance:    amount(r.NewBalance),
		Notices:       noticeStrings(r.Notices),
	}
}

func noticeStrings(ns []ledger.Notice) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.String()
	}
	return out
}

// TransactionJSON is the serialized result of a transfer.
type TransactionJSON struct {
	FromAccount    string   `json:"from_account"`
	ToAccount      string   `json:"to_account"`
	Amount         string   `json:"amount"`
	Description    string   `json:"description"`
	Classification string   `json:"classification"`
	DebitBalance   string   `json:"from_account_balance"`
	CreditBalance  string   `json:"to_account_balance"`
	Notices        []string `json:"validation_messages"`
}

// NewTransactionJSON converts a TransactionResult.
func NewTransactionJSON(r ledger.TransactionResult) TransactionJSON {
	return TransactionJSON{
		FromAccount:    r.FromAccount,
		ToAccount:      r.ToAccount,
		Amount:         amount(r.Amount),
		Description:    r.Description,
		Classification: string(r.Classification),
		DebitBalance:   amount(r.DebitBalance),
		CreditBalance:  amount(r.CreditBalance),
		Notices:        noticeStrings(r.Notices),
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
