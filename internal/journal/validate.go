package journal

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cleared-dev/bilanz/internal/id"
	"github.com/cleared-dev/bilanz/internal/model"
)

var validate = validator.New()

// Rules checked by ValidateEvents.
const (
	RuleFormat   = "format"
	RuleFields   = "fields"
	RuleAmount   = "amount"
	RuleSequence = "sequence"
	RulePeriod   = "period"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        string
	EventID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.EventID, e.Description)
}

// ValidateEvents checks a whole journal before it is replayed. Ledger rules
// that depend on state, such as unknown or duplicate accounts, are left to
// the replay.
func ValidateEvents(events []Event) []ValidationError {
	var errs []ValidationError
	for _, ev := range events {
		errs = append(errs, validateEvent(ev)...)
	}
	return append(errs, validateSequence(events)...)
}

func validateEvent(ev Event) []ValidationError {
	var errs []ValidationError
	fail := func(rule, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, EventID: ev.ID, Description: fmt.Sprintf(format, args...)})
	}

	if err := validate.Struct(ev); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fail(RuleFormat, "%v", err)
			return errs
		}
		for _, fe := range verrs {
			fail(RuleFormat, "%s fails %q (got %q)", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value()))
		}
	}

	if ev.CounterAccount != "" && ev.Op != OpTransfer {
		fail(RuleFields, "counter_account is only allowed on transfer")
	}

	switch ev.Op {
	case OpOpen:
		if ev.AccountType == "" {
			fail(RuleFields, "open requires account_type")
		}
		if ev.Name == "" {
			fail(RuleFields, "open requires name")
		}
	case OpDebit, OpCredit:
		if !ev.Amount.IsPositive() {
			fail(RuleAmount, "%s amount %s must be positive", ev.Op, ev.Amount)
		}
	case OpTransfer:
		if ev.CounterAccount == "" {
			fail(RuleFields, "transfer requires counter_account")
		} else if ev.CounterAccount == ev.Account {
			fail(RuleFields, "transfer debits and credits the same account %s", ev.Account)
		}
		if !ev.Amount.IsPositive() {
			fail(RuleAmount, "transfer amount %s must be positive", ev.Amount)
		}
	case OpRename:
		if ev.Name == "" && ev.Parent == "" {
			fail(RuleFields, "rename requires name or parent")
		}
	case OpDeactivate:
	}

	if !model.HasCentPrecision(ev.Amount) {
		fail(RuleAmount, "amount %s has more than 2 decimal places", ev.Amount)
	}
	return errs
}

// validateSequence checks that IDs are unique, match their timestamp's month
// and run 1..N without gaps within each month.
func validateSequence(events []Event) []ValidationError {
	var errs []ValidationError

	seqs := make(map[string]map[int]bool)
	var periods []string
	for _, ev := range events {
		year, month, seq, err := id.ParseEventID(ev.ID)
		if err != nil {
			errs = append(errs, ValidationError{Rule: RuleSequence, EventID: ev.ID, Description: fmt.Sprintf("invalid event ID: %v", err)})
			continue
		}
		if year != ev.Timestamp.Year() || month != int(ev.Timestamp.Month()) {
			errs = append(errs, ValidationError{
				Rule:        RulePeriod,
				EventID:     ev.ID,
				Description: fmt.Sprintf("timestamp %s not in %04d-%02d", ev.Timestamp.Format("2006-01-02"), year, month),
			})
		}

		period := id.Period(ev.ID)
		if seqs[period] == nil {
			seqs[period] = make(map[int]bool)
			periods = append(periods, period)
		}
		if seqs[period][seq] {
			errs = append(errs, ValidationError{Rule: RuleSequence, EventID: ev.ID, Description: "duplicate event ID"})
			continue
		}
		seqs[period][seq] = true
	}

	for _, p := range periods {
		seen := seqs[p]
		for i := 1; i <= len(seen); i++ {
			if !seen[i] {
				errs = append(errs, ValidationError{
					Rule:        RuleSequence,
					EventID:     fmt.Sprintf("%s seq %d", p, i),
					Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seen)),
				})
			}
		}
	}
	return errs
}
