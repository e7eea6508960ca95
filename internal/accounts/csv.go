package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/cleared-dev/bilanz/internal/model"
)

const (
	numFields   = 4
	colNumber   = 0
	colName     = 1
	colType     = 2
	colCategory = 3
)

var validate = validator.New()

var header = []string{"account_number", "account_name", "account_type", "category"}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]StandardAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []StandardAccount
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []StandardAccount) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts a StandardAccount to a CSV row.
func MarshalAccount(acct StandardAccount) []string {
	row := make([]string, numFields)
	row[colNumber] = acct.Number
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colCategory] = acct.Category
	return row
}

// UnmarshalAccount converts a CSV row to a StandardAccount. The account type
// must be one of the four known types and the number must lie in its range.
func UnmarshalAccount(record []string) (StandardAccount, error) {
	if len(record) != numFields {
		return StandardAccount{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if err := validate.Var(record[colNumber], "len=4,number"); err != nil {
		return StandardAccount{}, fmt.Errorf("account_number %q is not 4 digits", record[colNumber])
	}
	typ, err := model.ParseAccountType(record[colType])
	if err != nil {
		return StandardAccount{}, fmt.Errorf("parsing account_type: %w", err)
	}
	if !typ.InRange(record[colNumber]) {
		lo, hi := typ.NumberRange()
		return StandardAccount{}, fmt.Errorf("account_number %q outside %s range %s-%s", record[colNumber], typ, lo, hi)
	}

	return StandardAccount{
		Number:   record[colNumber],
		Name:     record[colName],
		Type:     typ,
		Category: record[colCategory],
	}, nil
}
