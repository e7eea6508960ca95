package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateParams holds the input of Create.
type CreateParams struct {
	Number         string            `validate:"len=4,number"`
	Name           string            `validate:"min=2,max=100"`
	Type           model.AccountType `validate:"oneof=aktivkonto passivkonto aufwandskonto ertragskonto"`
	InitialBalance decimal.Decimal   `validate:"-"`
	ParentAccount  string            `validate:"omitempty,len=4,number"`
}

// UpdateParams holds the optional changes applied by Update.
type UpdateParams struct {
	Name          *string
	ParentAccount *string
}

var fieldKinds = map[string]struct {
	kind  error
	field string
}{
	"Number":        {ErrInvalidAccountNumber, "number"},
	"Name":          {ErrInvalidAccountName, "name"},
	"Type":          {ErrInvalidAccountType, "account_type"},
	"ParentAccount": {ErrInvalidAccountNumber, "parent_account"},
}

// validateCreate normalises p and checks format, SKR range and initial
// balance precision. Uniqueness is checked by the Ledger under its lock.
func validateCreate(p *CreateParams) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Number = strings.TrimSpace(p.Number)
	p.ParentAccount = strings.TrimSpace(p.ParentAccount)

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return fmt.Errorf("validating account: %w", err)
		}
		fe := verrs[0]
		fk, ok := fieldKinds[fe.StructField()]
		if !ok {
			return fmt.Errorf("validating account: %w", err)
		}
		return &Error{
			Kind:    fk.kind,
			Field:   fk.field,
			Account: p.Number,
			Detail:  describeFieldError(fe),
		}
	}

	if !p.Type.InRange(p.Number) {
		lo, hi := p.Type.NumberRange()
		return &Error{
			Kind:    ErrAccountRangeViolation,
			Field:   "number",
			Account: p.Number,
			Detail:  fmt.Sprintf("%s accounts must be in range %s-%s (SKR03/SKR04)", p.Type.Label(), lo, hi),
		}
	}

	if !model.HasCentPrecision(p.InitialBalance) {
		return &Error{
			Kind:    ErrInvalidAmount,
			Field:   "initial_balance",
			Account: p.Number,
			Detail:  fmt.Sprintf("%s has more than 2 decimal places", p.InitialBalance),
		}
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "len":
		return fmt.Sprintf("%q must be exactly %s characters", fe.Value(), fe.Param())
	case "number":
		return fmt.Sprintf("%q must contain only digits", fe.Value())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("%v is not one of %s", fe.Value(), fe.Param())
	}
	return fe.Error()
}

// validateAmount checks a posting amount: positive, at most two decimals.
func validateAmount(amount decimal.Decimal, account string) error {
	if !amount.IsPositive() {
		return &Error{Kind: ErrInvalidAmount, Field: "amount", Account: account, Detail: "amount must be positive"}
	}
	if !model.HasCentPrecision(amount) {
		return &Error{Kind: ErrInvalidAmount, Field: "amount", Account: account, Detail: fmt.Sprintf("%s has more than 2 decimal places", amount)}
	}
	return nil
}

func validateName(name, account string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "min=2,max=100"); err != nil {
		return "", &Error{Kind: ErrInvalidAccountName, Field: "name", Account: account, Detail: "must be 2-100 characters"}
	}
	return name, nil
}

func validateParent(parent, account string) (string, error) {
	parent = strings.TrimSpace(parent)
	if err := validate.Var(parent, "omitempty,len=4,number"); err != nil {
		return "", &Error{Kind: ErrInvalidAccountNumber, Field: "parent_account", Account: account, Detail: fmt.Sprintf("%q must be 4 digits", parent)}
	}
	return parent, nil
}
